package repository

import (
	"context"

	"styllobarber-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	// FindActiveByName returns the oldest active profile with the exact name and role.
	FindActiveByName(ctx context.Context, name, role string) (*model.Profile, error)
	FindAll(ctx context.Context, role string) ([]model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
	ReplacePrivileges(ctx context.Context, profile *model.Profile, privileges []model.Privilege) error
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db}
}

func (r *profileRepo) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Preload("Privileges").Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Preload("Privileges").First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) FindActiveByName(ctx context.Context, name, role string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("full_name = ? AND role = ? AND is_active = ?", name, role, true).
		Order("created_at ASC").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) FindAll(ctx context.Context, role string) ([]model.Profile, error) {
	var profiles []model.Profile
	query := r.db.WithContext(ctx).Preload("Privileges").Order("full_name ASC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update saves the profile columns; privileges change only through ReplacePrivileges.
func (r *profileRepo) Update(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func (r *profileRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
		"is_active":  false,
	}).Error
}

func (r *profileRepo) ReplacePrivileges(ctx context.Context, profile *model.Profile, privileges []model.Privilege) error {
	return r.db.WithContext(ctx).Model(profile).Association("Privileges").Replace(privileges)
}

func (r *profileRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Update("last_seen_at", gorm.Expr("NOW()")).Error
}
