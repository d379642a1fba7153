package repository

import (
	"context"

	"styllobarber-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Create(ctx context.Context, appointment *model.Appointment) error
	Update(ctx context.Context, appointment *model.Appointment) error
	FindAll(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error)
}

type AppointmentFilter struct {
	ClientID *uuid.UUID
	StaffID  *uuid.UUID
	Status   *model.AppointmentStatus
	Limit    int
}

type appointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db}
}

func (r *appointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Staff").Preload("Service").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// Update saves the appointment's own columns only; preloaded relations are left alone.
func (r *appointmentRepo) Update(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Omit("Client", "Staff", "Service").Save(appointment).Error
}

func (r *appointmentRepo) FindAll(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error) {
	var appointments []model.Appointment

	q := r.db.WithContext(ctx).
		Preload("Client").Preload("Staff").Preload("Service").
		Order("data_agendamento DESC")
	if filter.ClientID != nil {
		q = q.Where("cliente_id = ?", *filter.ClientID)
	}
	if filter.StaffID != nil {
		q = q.Where("barbeiro_id = ?", *filter.StaffID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if err := q.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}
