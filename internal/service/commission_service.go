package service

import (
	"context"
	"errors"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotStaff = errors.New("profile is not an active barber")

type CommissionService interface {
	SetPercentage(ctx context.Context, req *SetCommissionRequest, actorID string) (*model.CommissionConfig, error)
	ListConfigs(ctx context.Context) ([]model.CommissionConfig, error)
}

type SetCommissionRequest struct {
	StaffID    uuid.UUID       `json:"staff_id" validate:"uuid_required"`
	Percentage decimal.Decimal `json:"percentage" validate:"gte=0,lte=100"`
}

type commissionService struct {
	configs  repository.CommissionConfigRepository
	profiles repository.ProfileRepository
}

func NewCommissionService(configs repository.CommissionConfigRepository, profiles repository.ProfileRepository) CommissionService {
	return &commissionService{configs: configs, profiles: profiles}
}

func (s *commissionService) SetPercentage(ctx context.Context, req *SetCommissionRequest, actorID string) (*model.CommissionConfig, error) {
	if err := validationFailure(req); err != nil {
		return nil, err
	}

	staff, err := s.profiles.FindByID(ctx, req.StaffID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	if staff.RoleCode != model.RoleBarber || !staff.IsActive {
		return nil, ErrNotStaff
	}

	cfg := &model.CommissionConfig{
		StaffID:    req.StaffID,
		Percentage: req.Percentage.Round(2),
	}
	cfg.ID = uuid.New()
	cfg.CreatedBy = actorID
	cfg.UpdatedBy = actorID

	if err := s.configs.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return s.configs.FindByStaffID(ctx, req.StaffID)
}

func (s *commissionService) ListConfigs(ctx context.Context) ([]model.CommissionConfig, error) {
	return s.configs.FindAll(ctx)
}
