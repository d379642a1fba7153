package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CashFlowDirection string

const (
	FlowIn  CashFlowDirection = "ENTRADA"
	FlowOut CashFlowDirection = "SAIDA"
)

const CashFlowOperational = "OPERACIONAL"

type CashFlowStatus string

const (
	FlowRealized  CashFlowStatus = "REALIZADO"
	FlowCancelled CashFlowStatus = "CANCELADO"
)

// CashFlowMovement mirrors a PDV transaction in the cash flow ledger.
type CashFlowMovement struct {
	BaseModel
	Direction     CashFlowDirection `gorm:"column:tipo;type:varchar(10);not null" json:"direction"`
	Amount        decimal.Decimal   `gorm:"column:valor;type:decimal(12,2);not null" json:"amount"`
	Description   string            `gorm:"column:descricao;type:varchar(255);not null" json:"description"`
	Category      string            `gorm:"column:categoria;type:varchar(30);not null" json:"category"`
	Date          time.Time         `gorm:"column:data;type:date;not null;index" json:"date"`
	Status        CashFlowStatus    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	TransactionID uuid.UUID         `gorm:"column:transacao_id;type:uuid;not null;index" json:"transaction_id"`
}

func (CashFlowMovement) TableName() string {
	return "movimentacoes_fluxo_caixa"
}

// SignedAmount is positive for ENTRADA and negative for SAIDA.
func (m *CashFlowMovement) SignedAmount() decimal.Decimal {
	if m.Direction == FlowOut {
		return m.Amount.Neg()
	}
	return m.Amount
}

// DirectionFor maps a transaction kind to its ledger direction. Only revenue
// and expense have one.
func DirectionFor(kind TransactionKind) (CashFlowDirection, bool) {
	switch kind {
	case KindRevenue:
		return FlowIn, true
	case KindExpense:
		return FlowOut, true
	default:
		return "", false
	}
}
