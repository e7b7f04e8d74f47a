package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orphancare/internal/model"
)

// ChildRepository defines persistence operations for children records.
type ChildRepository interface {
	Create(ctx context.Context, child *model.Child) error
	Update(ctx context.Context, child *model.Child) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Child, error)
	List(ctx context.Context) ([]model.Child, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type childRepository struct {
	db *gorm.DB
}

// NewChildRepository builds a GORM-backed repository.
func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

func (r *childRepository) Create(ctx context.Context, child *model.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *childRepository) Update(ctx context.Context, child *model.Child) error {
	return r.db.WithContext(ctx).Save(child).Error
}

func (r *childRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Child, error) {
	var child model.Child
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&child).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) List(ctx context.Context) ([]model.Child, error) {
	var children []model.Child
	if err := r.db.WithContext(ctx).Order("last_name, first_name").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *childRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Child{}, "id = ?", id).Error
}
