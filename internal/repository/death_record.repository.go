package repository

import (
	"context"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"

	"gorm.io/gorm"
)

type DeathRecordRepository interface {
	Create(ctx context.Context, record *models.DeathRecord) error
	FindByID(ctx context.Context, id uint) (*models.DeathRecord, error)
	// List returns records newest first; non-zero bounds filter on date_of_death.
	List(ctx context.Context, from, to time.Time) ([]models.DeathRecord, error)
	SerialTaken(ctx context.Context, serial string, excludeID uint) (bool, error)
	Update(ctx context.Context, record *models.DeathRecord) error
	Delete(ctx context.Context, id uint) error
	// Count counts records created within [from, to]; zero bounds are open.
	Count(ctx context.Context, from, to time.Time) (int64, error)
	DeleteBySerialPrefix(ctx context.Context, prefix string) (int64, error)
}

type deathRecordRepository struct {
	db *gorm.DB
}

func NewDeathRecordRepository(db *gorm.DB) DeathRecordRepository {
	return &deathRecordRepository{db: db}
}

func (r *deathRecordRepository) Create(ctx context.Context, record *models.DeathRecord) error {
	return translateError(r.db.WithContext(ctx).Create(record).Error)
}

func (r *deathRecordRepository) FindByID(ctx context.Context, id uint) (*models.DeathRecord, error) {
	var record models.DeathRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r *deathRecordRepository) List(ctx context.Context, from, to time.Time) ([]models.DeathRecord, error) {
	q := r.db.WithContext(ctx)
	if !from.IsZero() {
		q = q.Where("date_of_death >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date_of_death < ?", to)
	}
	records := []models.DeathRecord{}
	err := q.Order("created_at DESC").Find(&records).Error
	return records, translateError(err)
}

func (r *deathRecordRepository) SerialTaken(ctx context.Context, serial string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.DeathRecord{}).Where("serial_number = ?", serial)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

func (r *deathRecordRepository) Update(ctx context.Context, record *models.DeathRecord) error {
	res := r.db.WithContext(ctx).Model(record).
		Select("serial_number", "name", "gender", "date_of_death", "location", "reason").
		Updates(record)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *deathRecordRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.DeathRecord{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *deathRecordRepository) Count(ctx context.Context, from, to time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.DeathRecord{})
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at <= ?", to)
	}
	var n int64
	err := q.Count(&n).Error
	return n, translateError(err)
}

func (r *deathRecordRepository) DeleteBySerialPrefix(ctx context.Context, prefix string) (int64, error) {
	res := r.db.WithContext(ctx).Where("serial_number LIKE ?", prefix+"%").Delete(&models.DeathRecord{})
	return res.RowsAffected, translateError(res.Error)
}
