package repository

import (
	"context"

	"styllobarber-pdv/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindByNameAndKind(ctx context.Context, name string, kind model.TransactionKind) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context, kind *model.TransactionKind) ([]model.Category, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindByNameAndKind(ctx context.Context, name string, kind model.TransactionKind) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("nome = ? AND tipo = ?", name, kind).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) FindAll(ctx context.Context, kind *model.TransactionKind) ([]model.Category, error) {
	var categories []model.Category
	query := r.db.WithContext(ctx).Order("nome ASC")
	if kind != nil {
		query = query.Where("tipo = ?", *kind)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
