package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindRevenue    TransactionKind = "RECEITA"
	KindExpense    TransactionKind = "DESPESA"
	KindCommission TransactionKind = "COMISSAO"
)

// Label is the display name used by the history view.
func (k TransactionKind) Label() string {
	switch k {
	case KindRevenue:
		return "Receita"
	case KindExpense:
		return "Despesa"
	case KindCommission:
		return "Comissão"
	default:
		return string(k)
	}
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "DINHEIRO"
	PaymentPix        PaymentMethod = "PIX"
	PaymentDebitCard  PaymentMethod = "CARTAO_DEBITO"
	PaymentCreditCard PaymentMethod = "CARTAO_CREDITO"
)

type TransactionStatus string

const (
	TxConfirmed TransactionStatus = "CONFIRMADA"
	TxCancelled TransactionStatus = "CANCELADA"
)

// Transaction is a financial record written by the PDV. Rows are never hard
// deleted; cancellation flips Status.
type Transaction struct {
	BaseModel
	Kind          TransactionKind   `gorm:"column:tipo;type:varchar(20);not null;index" json:"kind"`
	Amount        decimal.Decimal   `gorm:"column:valor;type:decimal(12,2);not null" json:"amount"`
	Description   string            `gorm:"column:descricao;type:varchar(255);not null" json:"description"`
	PaymentMethod *PaymentMethod    `gorm:"column:metodo_pagamento;type:varchar(20)" json:"payment_method,omitempty"`
	Status        TransactionStatus `gorm:"column:status;type:varchar(20);not null;default:CONFIRMADA;index" json:"status"`
	OccurredAt    time.Time         `gorm:"column:data_transacao;not null;index" json:"occurred_at"`

	CategoryID          *uuid.UUID `gorm:"column:categoria_id;type:uuid" json:"category_id,omitempty"`
	StaffID             *uuid.UUID `gorm:"column:barbeiro_id;type:uuid;index" json:"staff_id,omitempty"`
	AppointmentID       *uuid.UUID `gorm:"column:agendamento_id;type:uuid" json:"appointment_id,omitempty"`
	OriginTransactionID *uuid.UUID `gorm:"column:transacao_origem_id;type:uuid;index" json:"origin_transaction_id,omitempty"`

	Notes          string  `gorm:"column:observacoes;type:text" json:"notes,omitempty"`
	IdempotencyKey *string `gorm:"column:idempotency_key;type:varchar(100);uniqueIndex" json:"-"`
}

func (Transaction) TableName() string {
	return "transacoes_financeiras"
}

// AppendNote adds a line to Notes without losing what was there.
func (t *Transaction) AppendNote(note string) {
	if t.Notes == "" {
		t.Notes = note
		return
	}
	t.Notes = t.Notes + " | " + note
}
