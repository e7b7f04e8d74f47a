package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DonationType classifies what was donated.
type DonationType string

const (
	DonationTypeMonetary DonationType = "monetary"
	DonationTypeFood     DonationType = "food"
	DonationTypeClothing DonationType = "clothing"
	DonationTypeSupplies DonationType = "supplies"
	DonationTypeOther    DonationType = "other"
)

// Donation represents a single contribution from a donor.
type Donation struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Type         DonationType    `json:"type" gorm:"type:varchar(20);not null;index"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(20,2)"`
	Currency     string          `json:"currency" gorm:"size:3;default:'USD'"`
	DonorName    string          `json:"donorName" gorm:"size:255;not null"`
	DonorEmail   string          `json:"donorEmail,omitempty" gorm:"size:255"`
	IsAnonymous  bool            `json:"isAnonymous" gorm:"default:false"`
	DonationDate time.Time       `json:"donationDate"`
	Notes        string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID and defaults the donation date.
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.DonationDate.IsZero() {
		d.DonationDate = time.Now()
	}
	return nil
}
