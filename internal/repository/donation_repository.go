package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orphancare/internal/model"
)

// DonationRepository defines persistence operations for donations.
type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	Update(ctx context.Context, donation *model.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	List(ctx context.Context) ([]model.Donation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository builds a GORM-backed repository.
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) Update(ctx context.Context, donation *model.Donation) error {
	return r.db.WithContext(ctx).Save(donation).Error
}

func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) List(ctx context.Context) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).Order("donation_date DESC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Donation{}, "id = ?", id).Error
}
