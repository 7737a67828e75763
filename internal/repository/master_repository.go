package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/model"
)

type MasterRepository interface {
	Create(ctx context.Context, master *model.Master) error
	Update(ctx context.Context, master *model.Master) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Master, error)
	GetByLogin(ctx context.Context, login string) (*model.Master, error)
	GetByCredentials(ctx context.Context, login, password string) (*model.Master, error)
	List(ctx context.Context) ([]model.Master, error)
	SetStatus(ctx context.Context, id uint, status model.Status) error
}

type GormMasterRepository struct {
	db *gorm.DB
}

func NewGormMasterRepository(db *gorm.DB) *GormMasterRepository {
	return &GormMasterRepository{db: db}
}

func (r *GormMasterRepository) Create(ctx context.Context, master *model.Master) error {
	return r.db.WithContext(ctx).Create(master).Error
}

func (r *GormMasterRepository) Update(ctx context.Context, master *model.Master) error {
	return r.db.WithContext(ctx).
		Model(&model.Master{}).
		Where("id = ?", master.ID).
		Select("login", "password", "full_name", "phone", "specialization", "status").
		Updates(master).
		Error
}

func (r *GormMasterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Master{}, id).Error
}

func (r *GormMasterRepository) GetByID(ctx context.Context, id uint) (*model.Master, error) {
	var m model.Master
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMasterRepository) GetByLogin(ctx context.Context, login string) (*model.Master, error) {
	var m model.Master
	if err := r.db.WithContext(ctx).First(&m, "login = ?", login).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMasterRepository) GetByCredentials(ctx context.Context, login, password string) (*model.Master, error) {
	var m model.Master
	err := r.db.WithContext(ctx).
		Where("login = ? AND password = ?", login, password).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMasterRepository) List(ctx context.Context) ([]model.Master, error) {
	var masters []model.Master
	if err := r.db.WithContext(ctx).Find(&masters).Error; err != nil {
		return nil, err
	}
	return masters, nil
}

func (r *GormMasterRepository) SetStatus(ctx context.Context, id uint, status model.Status) error {
	return r.db.WithContext(ctx).
		Model(&model.Master{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
