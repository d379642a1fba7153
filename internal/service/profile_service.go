package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrEmailExists  = errors.New("email already exists")
	ErrRoleNotFound = errors.New("role not found")
)

type ProfileService interface {
	CreateProfile(ctx context.Context, req *CreateProfileRequest, creatorID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest, updaterID string) (*model.Profile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID, deleterID string) error
	UpdateProfilePrivileges(ctx context.Context, id uuid.UUID, privilegeCodes []string, updaterID string) (*model.Profile, error)
	GetProfiles(ctx context.Context, role string) ([]model.ProfileResponse, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*model.ProfileResponse, error)
}

// CreateProfileRequest registers staff, admins or clients. Clients are
// created without email and password.
type CreateProfileRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role" validate:"required,oneof=admin barber client"`
}

type UpdateProfileRequest struct {
	Email       string  `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	Role        string  `json:"role" validate:"required,oneof=admin barber client"`
	IsActive    *bool   `json:"is_active"`
}

type profileService struct {
	profileRepo   repository.ProfileRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository) ProfileService {
	return &profileService{
		profileRepo:   profileRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
	}
}

func validationFailure(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

func optionalEmail(email string) *string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}
	return &email
}

func (s *profileService) CreateProfile(ctx context.Context, req *CreateProfileRequest, creatorID string) (*model.Profile, error) {
	if err := validationFailure(req); err != nil {
		return nil, err
	}
	if req.Role != model.RoleClient && (req.Email == "" || req.Password == "") {
		return nil, errors.New("email and password are required for staff profiles")
	}

	email := optionalEmail(req.Email)
	if email != nil {
		if existing, _ := s.profileRepo.FindByEmail(ctx, *email); existing != nil {
			return nil, ErrEmailExists
		}
	}

	role, err := s.roleRepo.FindByCode(req.Role)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	profile := &model.Profile{
		Email:       email,
		FullName:    strings.TrimSpace(req.FullName),
		PhoneNumber: req.PhoneNumber,
		RoleCode:    role.Code,
		IsActive:    true,
		Privileges:  role.Privileges,
	}
	profile.CreatedBy = creatorID
	profile.UpdatedBy = creatorID

	if req.Password != "" {
		if err := profile.SetPassword(req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest, updaterID string) (*model.Profile, error) {
	if err := validationFailure(req); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	email := optionalEmail(req.Email)
	if email != nil && (profile.Email == nil || *profile.Email != *email) {
		if existing, _ := s.profileRepo.FindByEmail(ctx, *email); existing != nil {
			return nil, ErrEmailExists
		}
	}

	role, err := s.roleRepo.FindByCode(req.Role)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	profile.Email = email
	profile.FullName = strings.TrimSpace(req.FullName)
	profile.PhoneNumber = req.PhoneNumber
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}
	profile.UpdatedBy = updaterID

	if req.Password != nil && *req.Password != "" {
		if err := profile.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	roleChanged := profile.RoleCode != role.Code
	profile.RoleCode = role.Code
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	if roleChanged {
		if err := s.profileRepo.ReplacePrivileges(ctx, profile, role.Privileges); err != nil {
			return nil, err
		}
	}

	return s.profileRepo.FindByID(ctx, id)
}

func (s *profileService) DeleteProfile(ctx context.Context, id uuid.UUID, deleterID string) error {
	if _, err := s.profileRepo.FindByID(ctx, id); err != nil {
		return ErrProfileNotFound
	}
	return s.profileRepo.Delete(ctx, id, deleterID)
}

func (s *profileService) UpdateProfilePrivileges(ctx context.Context, id uuid.UUID, privilegeCodes []string, updaterID string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, errors.New("failed to find privileges")
	}

	if err := s.profileRepo.ReplacePrivileges(ctx, profile, privileges); err != nil {
		return nil, err
	}

	profile.UpdatedBy = updaterID
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return s.profileRepo.FindByID(ctx, id)
}

func (s *profileService) GetProfiles(ctx context.Context, role string) ([]model.ProfileResponse, error) {
	profiles, err := s.profileRepo.FindAll(ctx, role)
	if err != nil {
		return nil, err
	}

	responses := make([]model.ProfileResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = profile.ToResponse()
	}
	return responses, nil
}

func (s *profileService) GetProfileByID(ctx context.Context, id uuid.UUID) (*model.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	response := profile.ToResponse()
	return &response, nil
}
