package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Profile is any person the barbershop knows about: admins, barbers and
// clients. Clients usually have no password and cannot log in.
type Profile struct {
	BaseModel
	Email        *string     `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Password     string      `gorm:"type:varchar(255)" json:"-"` // Hidden from JSON
	FullName     string      `gorm:"type:varchar(255);not null;index" json:"full_name"`
	PhoneNumber  string      `gorm:"type:varchar(20)" json:"phone_number"`
	RoleCode     string      `gorm:"column:role;type:varchar(20);not null;index" json:"role"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	Privileges   []Privilege `gorm:"many2many:profile_privileges;" json:"privileges,omitempty"`
	TokenVersion string      `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time  `json:"last_seen_at,omitempty"`                // For user presence
}

func (Profile) TableName() string {
	return "profiles"
}

// SetPassword hashes and sets the profile's password
func (p *Profile) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash.
// Profiles without a password never match.
func (p *Profile) CheckPassword(password string) bool {
	if p.Password == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
	return err == nil
}

// GetPrivilegeCodes returns a slice of all privilege codes for this profile
func (p *Profile) GetPrivilegeCodes() []string {
	codes := make([]string, len(p.Privileges))
	for i, priv := range p.Privileges {
		codes[i] = priv.Code
	}
	return codes
}

// ProfileResponse is used for API responses (without sensitive data)
type ProfileResponse struct {
	ID          uuid.UUID   `json:"id"`
	Email       *string     `json:"email,omitempty"`
	FullName    string      `json:"full_name"`
	PhoneNumber string      `json:"phone_number"`
	Role        string      `json:"role"`
	IsActive    bool        `json:"is_active"`
	LastSeenAt  *time.Time  `json:"last_seen_at,omitempty"`
	Privileges  []Privilege `json:"privileges"`
}

func (p *Profile) ToResponse() ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		PhoneNumber: p.PhoneNumber,
		Role:        p.RoleCode,
		IsActive:    p.IsActive,
		LastSeenAt:  p.LastSeenAt,
		Privileges:  p.Privileges,
	}
}
