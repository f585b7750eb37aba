package repository

import (
	"context"
	"strings"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"

	"gorm.io/gorm"
)

var sortableColumns = map[string]bool{
	"created_at":  true,
	"verified_on": true,
	"rejected_on": true,
}

// recordTable implements the queries shared by the birth and ID card tables.
type recordTable[T any] struct {
	db *gorm.DB
}

func (t recordTable[T]) create(ctx context.Context, record *T) error {
	return translateError(t.db.WithContext(ctx).Create(record).Error)
}

func (t recordTable[T]) findByID(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := t.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (t recordTable[T]) list(ctx context.Context, filter models.RecordFilter) ([]T, error) {
	records := []T{}
	order := "created_at"
	if sortableColumns[filter.OrderByColumn] {
		order = filter.OrderByColumn
	}
	err := applyRecordFilter(t.db.WithContext(ctx), filter).
		Order(order + " DESC").
		Find(&records).Error
	return records, translateError(err)
}

func (t recordTable[T]) count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	var n int64
	err := applyRecordFilter(t.db.WithContext(ctx).Model(new(T)), filter).Count(&n).Error
	return n, translateError(err)
}

// existsDuplicate looks for another record holding idNumber or photoHash.
// excludeID skips the record being updated; zero means none.
func (t recordTable[T]) existsDuplicate(ctx context.Context, idNumber, photoHash string, excludeID uint) (bool, error) {
	q := t.db.WithContext(ctx).Model(new(T)).
		Where("id_number = ? OR photo_hash = ?", idNumber, photoHash)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

func (t recordTable[T]) exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error
	return n > 0, translateError(err)
}

// transition applies change only while the row is still in status from and
// reports how many rows moved.
func (t recordTable[T]) transition(ctx context.Context, id uint, from models.RecordStatus, change models.StatusChange) (int64, error) {
	columns := map[string]interface{}{"status": change.Status}
	if change.VerifiedOn != nil {
		columns["verified_on"] = *change.VerifiedOn
	}
	if change.RejectedOn != nil {
		columns["rejected_on"] = *change.RejectedOn
		columns["reason"] = change.Reason
	}

	res := t.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND status = ?", id, from).
		Updates(columns)
	return res.RowsAffected, translateError(res.Error)
}

func (t recordTable[T]) delete(ctx context.Context, id uint) error {
	res := t.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (t recordTable[T]) deleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	res := t.db.WithContext(ctx).Where("id_number LIKE ?", prefix+"%").Delete(new(T))
	return res.RowsAffected, translateError(res.Error)
}

func applyRecordFilter(q *gorm.DB, f models.RecordFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Gender != "" {
		q = q.Where("LOWER(gender) = ?", strings.ToLower(strings.TrimSpace(f.Gender)))
	}
	if !f.CreatedFrom.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedFrom)
	}
	if !f.CreatedTo.IsZero() {
		q = q.Where("created_at <= ?", f.CreatedTo)
	}
	if !f.ExpiresFrom.IsZero() {
		q = q.Where("date_of_expiry >= ?", f.ExpiresFrom)
	}
	if !f.ExpiresTo.IsZero() {
		q = q.Where("date_of_expiry <= ?", f.ExpiresTo)
	}
	return q
}
