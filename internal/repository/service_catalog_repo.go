package repository

import (
	"context"

	"styllobarber-pdv/internal/model"

	"gorm.io/gorm"
)

type ServiceCatalogRepository interface {
	Create(ctx context.Context, service *model.Service) error
	// FindActive returns active services ordered by name, the order the
	// service matcher breaks ties with.
	FindActive(ctx context.Context) ([]model.Service, error)
	FindAll(ctx context.Context) ([]model.Service, error)
}

type serviceCatalogRepo struct {
	db *gorm.DB
}

func NewServiceCatalogRepo(db *gorm.DB) ServiceCatalogRepository {
	return &serviceCatalogRepo{db}
}

func (r *serviceCatalogRepo) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceCatalogRepo) FindActive(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).Where("ativo = ?", true).Order("nome ASC").Find(&services).Error
	return services, err
}

func (r *serviceCatalogRepo) FindAll(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&services).Error
	return services, err
}
