package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentConfirmed      AppointmentStatus = "confirmado"
	AppointmentCompleted      AppointmentStatus = "concluido"
	AppointmentCancelled      AppointmentStatus = "cancelado"
	AppointmentPendingPayment AppointmentStatus = "pendente_pagamento"
)

type Appointment struct {
	BaseModel
	ClientID    uuid.UUID         `gorm:"column:cliente_id;type:uuid;not null;index" json:"client_id"`
	Client      *Profile          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	StaffID     uuid.UUID         `gorm:"column:barbeiro_id;type:uuid;not null;index" json:"staff_id"`
	Staff       *Profile          `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	ServiceID   uuid.UUID         `gorm:"column:service_id;type:uuid;not null" json:"service_id"`
	Service     *Service          `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	ScheduledAt time.Time         `gorm:"column:data_agendamento;not null;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"column:status;type:varchar(30);not null;index" json:"status"`
	Amount      decimal.Decimal   `gorm:"column:valor;type:decimal(12,2)" json:"amount"`
	Notes       string            `gorm:"column:observacoes;type:text" json:"notes,omitempty"`
	PaidAt      *time.Time        `gorm:"column:pago_em" json:"paid_at,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
