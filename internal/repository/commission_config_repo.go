package repository

import (
	"context"

	"styllobarber-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommissionConfigRepository interface {
	FindByStaffID(ctx context.Context, staffID uuid.UUID) (*model.CommissionConfig, error)
	FindAll(ctx context.Context) ([]model.CommissionConfig, error)
	// Upsert creates or replaces the percentage of cfg.StaffID.
	Upsert(ctx context.Context, cfg *model.CommissionConfig) error
}

type commissionConfigRepo struct {
	db *gorm.DB
}

func NewCommissionConfigRepo(db *gorm.DB) CommissionConfigRepository {
	return &commissionConfigRepo{db}
}

func (r *commissionConfigRepo) FindByStaffID(ctx context.Context, staffID uuid.UUID) (*model.CommissionConfig, error) {
	var cfg model.CommissionConfig
	if err := r.db.WithContext(ctx).First(&cfg, "barbeiro_id = ?", staffID).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *commissionConfigRepo) FindAll(ctx context.Context) ([]model.CommissionConfig, error) {
	var configs []model.CommissionConfig
	err := r.db.WithContext(ctx).Preload("Staff").Order("created_at ASC").Find(&configs).Error
	return configs, err
}

func (r *commissionConfigRepo) Upsert(ctx context.Context, cfg *model.CommissionConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barbeiro_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"percentual", "updated_at", "updated_by"}),
	}).Create(cfg).Error
}
