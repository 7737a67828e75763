package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/model"
)

type ClientRepository interface {
	// Создать клиента; присвоенный базой ID остаётся в переданной сущности.
	Create(ctx context.Context, client *model.User) error
	// Полная перезапись строки по ID. Несуществующий ID — тихий no-op.
	Update(ctx context.Context, client *model.User) error
	// Удаление по ID. Несуществующий ID — тихий no-op.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByCredentials(ctx context.Context, login, password string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	SetStatus(ctx context.Context, id uint, status model.Status) error
}

// Реализация на GORM.
type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Create(ctx context.Context, client *model.User) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *GormClientRepository) Update(ctx context.Context, client *model.User) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", client.ID).
		Select("login", "password", "full_name", "phone", "status").
		Updates(client).
		Error
}

func (r *GormClientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *GormClientRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormClientRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "login = ?", login).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormClientRepository) GetByCredentials(ctx context.Context, login, password string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("login = ? AND password = ?", login, password).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormClientRepository) List(ctx context.Context) ([]model.User, error) {
	var clients []model.User
	if err := r.db.WithContext(ctx).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *GormClientRepository) SetStatus(ctx context.Context, id uint, status model.Status) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
