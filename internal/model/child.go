package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Child represents a resident child's profile record.
type Child struct {
	ID              uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName       string         `json:"firstName" gorm:"size:100;not null;index"`
	LastName        string         `json:"lastName" gorm:"size:100;not null;index"`
	Gender          string         `json:"gender" gorm:"type:varchar(10);not null"`
	DateOfBirth     time.Time      `json:"dateOfBirth" gorm:"not null"`
	EntryDate       time.Time      `json:"entryDate" gorm:"not null"`
	EducationLevel  string         `json:"educationLevel,omitempty" gorm:"size:100"`
	GuardianName    string         `json:"guardianName,omitempty" gorm:"size:255"`
	GuardianContact string         `json:"guardianContact,omitempty" gorm:"size:100"`
	Background      string         `json:"background,omitempty" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID and defaults the entry date.
func (c *Child) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.EntryDate.IsZero() {
		c.EntryDate = time.Now()
	}
	return nil
}
