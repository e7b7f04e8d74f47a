package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a staff or admin operator of the system.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName    string    `json:"firstName" gorm:"size:100;not null"`
	LastName     string    `json:"lastName" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'staff'"`
	IsVerified   bool      `json:"isVerified" gorm:"default:false"`

	// Transient login verification state. A new code is written on every
	// login and cleared once consumed.
	VerificationCode *string `json:"-" gorm:"size:10"`

	// Password reset state. Only a SHA-256 hash of the emailed token is
	// ever stored.
	ResetPasswordToken   *string    `json:"-" gorm:"size:64;index"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID and default role before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleStaff
	}
	return nil
}

// FullName returns the display name used in session payloads.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserProfile is the full public projection of a user. It carries no
// credential or transient verification state, so it is safe to cache and
// to hand to any caller.
type UserProfile struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Profile builds the public projection of the user.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// UserSummary is the public projection of a user returned by auth endpoints.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Summary builds the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.FullName(),
		Email: u.Email,
		Role:  u.Role,
	}
}
