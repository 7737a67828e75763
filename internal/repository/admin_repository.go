package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/model"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Admin, error)
	GetByLogin(ctx context.Context, login string) (*model.Admin, error)
	GetByCredentials(ctx context.Context, login, password string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
}

type GormAdminRepository struct {
	db *gorm.DB
}

func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *GormAdminRepository) Update(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("id = ?", admin.ID).
		Select("login", "password").
		Updates(admin).
		Error
}

func (r *GormAdminRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Admin{}, id).Error
}

func (r *GormAdminRepository) GetByID(ctx context.Context, id uint) (*model.Admin, error) {
	var a model.Admin
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAdminRepository) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	var a model.Admin
	if err := r.db.WithContext(ctx).First(&a, "login = ?", login).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAdminRepository) GetByCredentials(ctx context.Context, login, password string) (*model.Admin, error) {
	var a model.Admin
	err := r.db.WithContext(ctx).
		Where("login = ? AND password = ?", login, password).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := r.db.WithContext(ctx).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}
