package service

import (
	"context"
	"errors"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentService interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filter repository.AppointmentFilter) ([]model.Appointment, error)
}

type appointmentService struct {
	repo repository.AppointmentRepository
}

func NewAppointmentService(repo repository.AppointmentRepository) AppointmentService {
	return &appointmentService{repo: repo}
}

func (s *appointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) ListAppointments(ctx context.Context, filter repository.AppointmentFilter) ([]model.Appointment, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = 50
	case filter.Limit > MaxHistoryLimit:
		filter.Limit = MaxHistoryLimit
	}
	return s.repo.FindAll(ctx, filter)
}
