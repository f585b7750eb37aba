package repository

import (
	"context"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"

	"gorm.io/gorm"
)

type IDCardRepository interface {
	Create(ctx context.Context, record *models.IDCardRecord) error
	FindByID(ctx context.Context, id uint) (*models.IDCardRecord, error)
	List(ctx context.Context, filter models.RecordFilter) ([]models.IDCardRecord, error)
	Count(ctx context.Context, filter models.RecordFilter) (int64, error)
	ExistsByIDNumberOrPhotoHash(ctx context.Context, idNumber, photoHash string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	TransitionStatus(ctx context.Context, id uint, from models.RecordStatus, change models.StatusChange) (int64, error)
	UpdateDetails(ctx context.Context, record *models.IDCardRecord) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error)
}

type idCardRepository struct {
	table recordTable[models.IDCardRecord]
}

func NewIDCardRepository(db *gorm.DB) IDCardRepository {
	return &idCardRepository{table: recordTable[models.IDCardRecord]{db: db}}
}

func (r *idCardRepository) Create(ctx context.Context, record *models.IDCardRecord) error {
	return r.table.create(ctx, record)
}

func (r *idCardRepository) FindByID(ctx context.Context, id uint) (*models.IDCardRecord, error) {
	return r.table.findByID(ctx, id)
}

func (r *idCardRepository) List(ctx context.Context, filter models.RecordFilter) ([]models.IDCardRecord, error) {
	return r.table.list(ctx, filter)
}

func (r *idCardRepository) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	return r.table.count(ctx, filter)
}

func (r *idCardRepository) ExistsByIDNumberOrPhotoHash(ctx context.Context, idNumber, photoHash string, excludeID uint) (bool, error) {
	return r.table.existsDuplicate(ctx, idNumber, photoHash, excludeID)
}

func (r *idCardRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.table.exists(ctx, id)
}

func (r *idCardRepository) TransitionStatus(ctx context.Context, id uint, from models.RecordStatus, change models.StatusChange) (int64, error) {
	return r.table.transition(ctx, id, from, change)
}

// UpdateDetails saves the descriptive columns and photo of an ID card. The
// lifecycle columns are never written here.
func (r *idCardRepository) UpdateDetails(ctx context.Context, record *models.IDCardRecord) error {
	res := r.table.db.WithContext(ctx).Model(record).
		Select("id_number", "full_name", "date_of_birth", "gender", "place_of_birth",
			"nationality", "parent_serial_number", "date_of_issue", "date_of_expiry",
			"county", "email", "photo_hash", "photo_path").
		Updates(record)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *idCardRepository) Delete(ctx context.Context, id uint) error {
	return r.table.delete(ctx, id)
}

func (r *idCardRepository) DeleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	return r.table.deleteByIDNumberPrefix(ctx, prefix)
}
