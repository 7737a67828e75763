package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/model"
)

type PurposeRepository interface {
	Create(ctx context.Context, purpose *model.Purpose) error
	Update(ctx context.Context, purpose *model.Purpose) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Purpose, error)
	List(ctx context.Context) ([]model.Purpose, error)
}

type GormPurposeRepository struct {
	db *gorm.DB
}

func NewGormPurposeRepository(db *gorm.DB) *GormPurposeRepository {
	return &GormPurposeRepository{db: db}
}

func (r *GormPurposeRepository) Create(ctx context.Context, purpose *model.Purpose) error {
	return r.db.WithContext(ctx).Create(purpose).Error
}

func (r *GormPurposeRepository) Update(ctx context.Context, purpose *model.Purpose) error {
	return r.db.WithContext(ctx).
		Model(&model.Purpose{}).
		Where("id = ?", purpose.ID).
		Select("name", "cost").
		Updates(purpose).
		Error
}

func (r *GormPurposeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Purpose{}, id).Error
}

func (r *GormPurposeRepository) GetByID(ctx context.Context, id uint) (*model.Purpose, error) {
	var p model.Purpose
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPurposeRepository) List(ctx context.Context) ([]model.Purpose, error) {
	var purposes []model.Purpose
	if err := r.db.WithContext(ctx).Find(&purposes).Error; err != nil {
		return nil, err
	}
	return purposes, nil
}
