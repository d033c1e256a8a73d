package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleHiring     Role = "hiring"
	RoleOpenToWork Role = "open-to-work"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleHiring, RoleOpenToWork:
		return true
	default:
		return false
	}
}

type Profile struct {
	SubjectID    string    `json:"subjectId" db:"subject_id"`
	Email        string    `json:"email" db:"email"`
	Role         Role      `json:"role" db:"role"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	ProfileImage *string   `json:"profileImage,omitempty" db:"profile_image"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Name prefers the display name and falls back to first and last name.
func (p *Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type CreateProfileInput struct {
	Role        Role   `json:"role" validate:"required,oneof=hiring open-to-work"`
	DisplayName string `json:"displayName" validate:"omitempty,max=100"`
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
}

type UpdateProfileInput struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,max=100"`
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
