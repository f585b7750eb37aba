package repository

import (
	"context"

	"civilregistry/internal/models"

	"gorm.io/gorm"
)

type BirthRepository interface {
	Create(ctx context.Context, record *models.BirthRecord) error
	FindByID(ctx context.Context, id uint) (*models.BirthRecord, error)
	List(ctx context.Context, filter models.RecordFilter) ([]models.BirthRecord, error)
	Count(ctx context.Context, filter models.RecordFilter) (int64, error)
	ExistsByIDNumberOrPhotoHash(ctx context.Context, idNumber, photoHash string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	TransitionStatus(ctx context.Context, id uint, from models.RecordStatus, change models.StatusChange) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error)
}

type birthRepository struct {
	table recordTable[models.BirthRecord]
}

func NewBirthRepository(db *gorm.DB) BirthRepository {
	return &birthRepository{table: recordTable[models.BirthRecord]{db: db}}
}

func (r *birthRepository) Create(ctx context.Context, record *models.BirthRecord) error {
	return r.table.create(ctx, record)
}

func (r *birthRepository) FindByID(ctx context.Context, id uint) (*models.BirthRecord, error) {
	return r.table.findByID(ctx, id)
}

func (r *birthRepository) List(ctx context.Context, filter models.RecordFilter) ([]models.BirthRecord, error) {
	return r.table.list(ctx, filter)
}

func (r *birthRepository) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	return r.table.count(ctx, filter)
}

func (r *birthRepository) ExistsByIDNumberOrPhotoHash(ctx context.Context, idNumber, photoHash string, excludeID uint) (bool, error) {
	return r.table.existsDuplicate(ctx, idNumber, photoHash, excludeID)
}

func (r *birthRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.table.exists(ctx, id)
}

func (r *birthRepository) TransitionStatus(ctx context.Context, id uint, from models.RecordStatus, change models.StatusChange) (int64, error) {
	return r.table.transition(ctx, id, from, change)
}

func (r *birthRepository) Delete(ctx context.Context, id uint) error {
	return r.table.delete(ctx, id)
}

func (r *birthRepository) DeleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	return r.table.deleteByIDNumberPrefix(ctx, prefix)
}
