package service

import (
	"context"
	"strings"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService manages the barbershop services and lists the financial
// categories created by the PDV.
type CatalogService interface {
	CreateService(ctx context.Context, req *CreateServiceRequest, actorID string) (*model.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error)
	ListCategories(ctx context.Context, kind *model.TransactionKind) ([]model.Category, error)
}

type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	Price           decimal.Decimal `json:"price" validate:"gte=0"`
	DurationMinutes int             `json:"duration_minutes" validate:"gte=0"`
	IsActive        *bool           `json:"is_active"`
}

type catalogService struct {
	services   repository.ServiceCatalogRepository
	categories repository.CategoryRepository
}

func NewCatalogService(services repository.ServiceCatalogRepository, categories repository.CategoryRepository) CatalogService {
	return &catalogService{services: services, categories: categories}
}

func (s *catalogService) CreateService(ctx context.Context, req *CreateServiceRequest, actorID string) (*model.Service, error) {
	if err := validationFailure(req); err != nil {
		return nil, err
	}

	svc := &model.Service{
		Name:            strings.TrimSpace(req.Name),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if svc.DurationMinutes == 0 {
		svc.DurationMinutes = 30
	}
	svc.ID = uuid.New()
	svc.CreatedBy = actorID
	svc.UpdatedBy = actorID

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	if activeOnly {
		return s.services.FindActive(ctx)
	}
	return s.services.FindAll(ctx)
}

func (s *catalogService) ListCategories(ctx context.Context, kind *model.TransactionKind) ([]model.Category, error) {
	return s.categories.FindAll(ctx, kind)
}
