package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"
	"civilregistry/internal/repository"
)

// memTable mimics the record tables: unique id_number and photo_hash, a
// conditional status update and the list/count filters.
type memTable[T any] struct {
	mu       sync.Mutex
	civil    func(*T) *models.CivilRecord
	rows     []*T
	nextID   uint
	now      func() time.Time
	countErr map[string]error // keyed by filter description, see filterKey
	lookups  int
}

func newBirthTable() *memTable[models.BirthRecord] {
	return &memTable[models.BirthRecord]{civil: func(r *models.BirthRecord) *models.CivilRecord { return &r.CivilRecord }, now: time.Now}
}

func newIDCardTable() *memTable[models.IDCardRecord] {
	return &memTable[models.IDCardRecord]{civil: func(r *models.IDCardRecord) *models.CivilRecord { return &r.CivilRecord }, now: time.Now}
}

func filterKey(f models.RecordFilter) string {
	switch {
	case f.Gender != "":
		return "gender"
	case !f.ExpiresFrom.IsZero():
		return "expiring"
	case !f.CreatedFrom.IsZero():
		return "today"
	case f.Status != "":
		return string(f.Status)
	default:
		return "total"
	}
}

func (m *memTable[T]) Create(ctx context.Context, record *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.civil(record)
	for _, row := range m.rows {
		existing := m.civil(row)
		if existing.IDNumber == c.IDNumber || existing.PhotoHash == c.PhotoHash {
			return apperrors.ErrDuplicateRecord
		}
	}
	m.nextID++
	c.ID = m.nextID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = m.now()
	}
	if c.Status == "" {
		c.Status = models.StatusPending
	}
	stored := *record
	m.rows = append(m.rows, &stored)
	return nil
}

func (m *memTable[T]) find(id uint) *T {
	for _, row := range m.rows {
		if m.civil(row).ID == id {
			return row
		}
	}
	return nil
}

func (m *memTable[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.find(id)
	if row == nil {
		return nil, apperrors.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (m *memTable[T]) matches(c *models.CivilRecord, f models.RecordFilter) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Gender != "" && strings.ToLower(c.Gender) != strings.ToLower(f.Gender) {
		return false
	}
	if !f.CreatedFrom.IsZero() && c.CreatedAt.Before(f.CreatedFrom) {
		return false
	}
	if !f.CreatedTo.IsZero() && c.CreatedAt.After(f.CreatedTo) {
		return false
	}
	if !f.ExpiresFrom.IsZero() && c.DateOfExpiry.Before(f.ExpiresFrom) {
		return false
	}
	if !f.ExpiresTo.IsZero() && c.DateOfExpiry.After(f.ExpiresTo) {
		return false
	}
	return true
}

func (m *memTable[T]) List(ctx context.Context, filter models.RecordFilter) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for _, row := range m.rows {
		if m.matches(m.civil(row), filter) {
			out = append(out, *row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return m.civil(&out[i]).CreatedAt.After(m.civil(&out[j]).CreatedAt)
	})
	return out, nil
}

func (m *memTable[T]) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.countErr[filterKey(filter)]; err != nil {
		return 0, err
	}
	var n int64
	for _, row := range m.rows {
		if m.matches(m.civil(row), filter) {
			n++
		}
	}
	return n, nil
}

func (m *memTable[T]) ExistsByIDNumberOrPhotoHash(ctx context.Context, idNumber, photoHash string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	for _, row := range m.rows {
		c := m.civil(row)
		if c.ID == excludeID {
			continue
		}
		if c.IDNumber == idNumber || c.PhotoHash == photoHash {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTable[T]) Exists(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(id) != nil, nil
}

func (m *memTable[T]) TransitionStatus(ctx context.Context, id uint, from models.RecordStatus, change models.StatusChange) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.find(id)
	if row == nil || m.civil(row).Status != from {
		return 0, nil
	}
	c := m.civil(row)
	c.Status = change.Status
	if change.VerifiedOn != nil {
		c.VerifiedOn = change.VerifiedOn
	}
	if change.RejectedOn != nil {
		c.RejectedOn = change.RejectedOn
		c.Reason = change.Reason
	}
	return 1, nil
}

func (m *memTable[T]) UpdateDetails(ctx context.Context, record *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.find(m.civil(record).ID)
	if row == nil {
		return apperrors.ErrNotFound
	}
	// status columns are not part of an update
	status := *m.civil(row)
	*row = *record
	c := m.civil(row)
	c.Status, c.VerifiedOn, c.RejectedOn, c.Reason = status.Status, status.VerifiedOn, status.RejectedOn, status.Reason
	return nil
}

func (m *memTable[T]) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if m.civil(row).ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *memTable[T]) DeleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	var n int64
	for _, row := range m.rows {
		if strings.HasPrefix(m.civil(row).IDNumber, prefix) {
			n++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return n, nil
}

// racyTable hides existing rows from the duplicate lookup so the insert
// reaches the unique index, as when two submissions race.
type racyTable struct {
	*memTable[models.BirthRecord]
}

func (racyTable) ExistsByIDNumberOrPhotoHash(context.Context, string, string, uint) (bool, error) {
	return false, nil
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingInvalidator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type memPhotoStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	removed []string
	seq     int
}

func newMemPhotoStore() *memPhotoStore {
	return &memPhotoStore{saved: map[string][]byte{}}
}

func (s *memPhotoStore) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p := fmt.Sprintf("/uploads/photo-%d.jpg", s.seq)
	s.saved[p] = data
	return p, nil
}

func (s *memPhotoStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, path)
	s.removed = append(s.removed, path)
	return nil
}

type fakeUserCounter struct {
	byRole   map[models.Role]int64
	total    int64
	newToday int64
	err      error
}

func (f fakeUserCounter) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	switch {
	case filter.Role != "":
		return f.byRole[filter.Role], nil
	case !filter.CreatedFrom.IsZero():
		return f.newToday, nil
	default:
		return f.total, nil
	}
}

type fakeDeathCounter struct {
	total, today int64
	err          error
}

func (f fakeDeathCounter) Count(ctx context.Context, from, to time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if from.IsZero() {
		return f.total, nil
	}
	return f.today, nil
}
