package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Lerokbel/BarberShop/internal/model"
)

type RecordRepository interface {
	Create(ctx context.Context, record *model.Record) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Record, error)
	List(ctx context.Context) ([]model.Record, error)
	// Будущие записи клиента.
	ListByClient(ctx context.Context, clientID uint, after time.Time) ([]model.Record, error)
	// Будущие записи, принятые мастером.
	ListByMaster(ctx context.Context, masterID uint, after time.Time) ([]model.Record, error)
	// Записи без назначенного мастера.
	ListNotAccepted(ctx context.Context) ([]model.Record, error)
	// Записи с назначенным мастером.
	ListAccepted(ctx context.Context) ([]model.Record, error)
	// Назначить мастера на запись. Обновляет только свободную запись
	// или запись этого же мастера; иначе — gorm.ErrRecordNotFound.
	Accept(ctx context.Context, recordID, masterID uint) error
	// Снять мастера с записи, вернув её в пул непринятых.
	ClearAcceptance(ctx context.Context, recordID uint) error
}

type GormRecordRepository struct {
	db *gorm.DB
}

func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

func (r *GormRecordRepository) Create(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormRecordRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Record{}, id).Error
}

func (r *GormRecordRepository) GetByID(ctx context.Context, id uint) (*model.Record, error) {
	var rec model.Record
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRecordRepository) List(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRecordRepository) ListByClient(ctx context.Context, clientID uint, after time.Time) ([]model.Record, error) {
	var records []model.Record
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Where("time > ?", after).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRecordRepository) ListByMaster(ctx context.Context, masterID uint, after time.Time) ([]model.Record, error) {
	var records []model.Record
	err := r.db.WithContext(ctx).
		Where("master_id = ?", masterID).
		Where("time > ?", after).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRecordRepository) ListNotAccepted(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	err := r.db.WithContext(ctx).
		Where("master_id IS NULL").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRecordRepository) ListAccepted(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	err := r.db.WithContext(ctx).
		Where("master_id IS NOT NULL").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRecordRepository) Accept(ctx context.Context, recordID, masterID uint) error {
	// Условный UPDATE: запись либо свободна, либо уже за этим мастером.
	// Иначе два мастера, принимающие одновременно, перетёрли бы друг друга.
	res := r.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("id = ? AND (master_id IS NULL OR master_id = ?)", recordID, masterID).
		Update("master_id", masterID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRecordRepository) ClearAcceptance(ctx context.Context, recordID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("id = ?", recordID).
		Update("master_id", nil).
		Error
}
