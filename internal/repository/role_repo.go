package repository

import (
	"errors"

	"styllobarber-pdv/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll() ([]model.Role, error)
	FindByCode(code string) (*model.Role, error)
	// SeedDefaults creates the missing default roles and attaches their
	// default privileges. Admin gets every privilege in the table.
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Preload("Privileges").Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByCode(code string) (*model.Role, error) {
	var role model.Role
	err := r.db.Preload("Privileges").Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) SeedDefaults() error {
	for _, defaultRole := range model.DefaultRoles {
		role := defaultRole
		var existing model.Role
		err := r.db.Where("code = ?", role.Code).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := r.db.Create(&role).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			role = existing
		}

		var privileges []model.Privilege
		query := r.db
		if role.Code != model.RoleAdmin {
			codes := model.DefaultRolePrivileges[role.Code]
			if len(codes) == 0 {
				continue
			}
			query = query.Where("code IN ?", codes)
		}
		if err := query.Find(&privileges).Error; err != nil {
			return err
		}
		if err := r.db.Model(&role).Association("Privileges").Replace(privileges); err != nil {
			return err
		}
	}
	return nil
}
