package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/internal/ws"
	"styllobarber-pdv/pkg/jwt"
)

// SessionIdleTimeout is how long a session survives without a heartbeat.
const SessionIdleTimeout = 5 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileInactive    = errors.New("profile is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error)
	Heartbeat(ctx context.Context, profileID uuid.UUID) error
}

type LoginResponse struct {
	Token      string                `json:"token"`
	Profile    model.ProfileResponse `json:"profile"`
	Privileges []string              `json:"privileges"`
}

type TokenValidationResponse struct {
	Profile    model.ProfileResponse `json:"profile"`
	Privileges []string              `json:"privileges"`
}

type authService struct {
	profileRepo repository.ProfileRepository
	tokens      *jwt.Manager
	notifier    Notifier
	now         func() time.Time
}

func NewAuthService(profileRepo repository.ProfileRepository, tokens *jwt.Manager, notifier Notifier) AuthService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &authService{
		profileRepo: profileRepo,
		tokens:      tokens,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !profile.IsActive {
		return nil, ErrProfileInactive
	}

	if !profile.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// A new token version logs out any other device.
	now := s.now()
	profile.TokenVersion = uuid.New().String()
	profile.LastSeenAt = &now
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := s.tokens.GenerateToken(profile.ID, profile.FullName, profile.RoleCode, profile.GetPrivilegeCodes(), profile.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:      token,
		Profile:    profile.ToResponse(),
		Privileges: profile.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return ErrProfileNotFound
	}

	if !profile.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := profile.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	// Changing the password ends the current session.
	profile.TokenVersion = uuid.New().String()
	return s.profileRepo.Update(ctx, profile)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByID(ctx, claims.ProfileID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	if !profile.IsActive {
		return nil, ErrProfileInactive
	}

	if profile.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionReplaced
	}

	if profile.LastSeenAt == nil || s.now().Sub(*profile.LastSeenAt) > SessionIdleTimeout {
		return nil, ErrSessionTimeout
	}

	return &TokenValidationResponse{
		Profile:    profile.ToResponse(),
		Privileges: profile.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Heartbeat(ctx context.Context, profileID uuid.UUID) error {
	if err := s.profileRepo.UpdateLastSeen(ctx, profileID); err != nil {
		return err
	}

	s.notifier.Publish(ws.Event{
		Type: ws.EventProfileStatus,
		Payload: map[string]interface{}{
			"profile_id":   profileID.String(),
			"status":       "online",
			"last_seen_at": s.now(),
		},
	})
	return nil
}
