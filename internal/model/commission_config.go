package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionConfig stores the commission percentage of one staff member.
type CommissionConfig struct {
	BaseModel
	StaffID    uuid.UUID       `gorm:"column:barbeiro_id;type:uuid;not null;uniqueIndex" json:"staff_id"`
	Staff      *Profile        `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Percentage decimal.Decimal `gorm:"column:percentual;type:decimal(5,2);not null" json:"percentage"`
}

func (CommissionConfig) TableName() string {
	return "comissoes_config"
}
