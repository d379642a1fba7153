package model

import "github.com/shopspring/decimal"

// Service is an entry of the barbershop catalog (haircut, beard, ...).
type Service struct {
	BaseModel
	Name            string          `gorm:"column:nome;type:varchar(100);not null" json:"name" validate:"required"`
	Price           decimal.Decimal `gorm:"column:preco;type:decimal(12,2);not null" json:"price" validate:"gte=0"`
	DurationMinutes int             `gorm:"column:duracao_minutos;default:30" json:"duration_minutes" validate:"gte=0"`
	IsActive        bool            `gorm:"column:ativo;default:true;index" json:"is_active"`
}

func (Service) TableName() string {
	return "services"
}
