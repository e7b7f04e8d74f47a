package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "orphancare/internal/errors"
	"orphancare/internal/model"
	"orphancare/internal/repository"
)

// DonationService exposes CRUD over donations.
type DonationService interface {
	CreateDonation(ctx context.Context, donation *model.Donation) (*model.Donation, error)
	GetDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	ListDonations(ctx context.Context) ([]model.Donation, error)
	UpdateDonation(ctx context.Context, donation *model.Donation) (*model.Donation, error)
	DeleteDonation(ctx context.Context, id uuid.UUID) error
}

type donationService struct {
	repo repository.DonationRepository
}

// NewDonationService builds a DonationService.
func NewDonationService(repo repository.DonationRepository) DonationService {
	return &donationService{repo: repo}
}

func (s *donationService) CreateDonation(ctx context.Context, donation *model.Donation) (*model.Donation, error) {
	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, err
	}
	return donation, nil
}

func (s *donationService) GetDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	donation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDonationNotFound
		}
		return nil, err
	}
	return donation, nil
}

func (s *donationService) ListDonations(ctx context.Context) ([]model.Donation, error) {
	return s.repo.List(ctx)
}

func (s *donationService) UpdateDonation(ctx context.Context, donation *model.Donation) (*model.Donation, error) {
	existing, err := s.repo.FindByID(ctx, donation.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDonationNotFound
		}
		return nil, err
	}

	donation.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, donation); err != nil {
		return nil, err
	}
	return donation, nil
}

func (s *donationService) DeleteDonation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDonationNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
