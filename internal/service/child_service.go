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

// ChildService exposes CRUD over children records.
type ChildService interface {
	CreateChild(ctx context.Context, child *model.Child) (*model.Child, error)
	GetChild(ctx context.Context, id uuid.UUID) (*model.Child, error)
	ListChildren(ctx context.Context) ([]model.Child, error)
	UpdateChild(ctx context.Context, child *model.Child) (*model.Child, error)
	DeleteChild(ctx context.Context, id uuid.UUID) error
}

type childService struct {
	repo repository.ChildRepository
}

// NewChildService builds a ChildService.
func NewChildService(repo repository.ChildRepository) ChildService {
	return &childService{repo: repo}
}

func (s *childService) CreateChild(ctx context.Context, child *model.Child) (*model.Child, error) {
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *childService) GetChild(ctx context.Context, id uuid.UUID) (*model.Child, error) {
	child, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}
	return child, nil
}

func (s *childService) ListChildren(ctx context.Context) ([]model.Child, error) {
	return s.repo.List(ctx)
}

func (s *childService) UpdateChild(ctx context.Context, child *model.Child) (*model.Child, error) {
	existing, err := s.repo.FindByID(ctx, child.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChildNotFound
		}
		return nil, err
	}

	child.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *childService) DeleteChild(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrChildNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
