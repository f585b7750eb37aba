package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/metrics"
	"civilregistry/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsAsOf = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func addBirth(t *testing.T, table *memTable[models.BirthRecord], idNumber, gender string, status models.RecordStatus, created, expiry time.Time) {
	t.Helper()
	r := &models.BirthRecord{}
	r.IDNumber = idNumber
	r.PhotoHash = "hash-" + idNumber
	r.Gender = gender
	r.Status = status
	r.CreatedAt = created
	r.DateOfExpiry = expiry
	require.NoError(t, table.Create(context.Background(), r))
}

type memSnapshotCache struct {
	mu   sync.Mutex
	data map[string]*models.StatsSnapshot
	sets int
}

func (c *memSnapshotCache) Get(ctx context.Context, asOf time.Time) (*models.StatsSnapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.data[asOf.Format("2006-01-02")]
	return s, ok, nil
}

func (c *memSnapshotCache) Set(ctx context.Context, s *models.StatsSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string]*models.StatsSnapshot{}
	}
	c.data[s.AsOf.Format("2006-01-02")] = s
	c.sets++
	return nil
}

func TestStatsGenderIsCaseInsensitive(t *testing.T) {
	births := newBirthTable()
	old := statsAsOf.AddDate(-1, 0, 0)
	addBirth(t, births, "B1", "Male", models.StatusPending, old, old)
	addBirth(t, births, "B2", "female", models.StatusPending, old, old)
	addBirth(t, births, "B3", "MALE", models.StatusPending, old, old)
	addBirth(t, births, "B4", "male", models.StatusPending, old, old)

	svc := NewStatsService(fakeUserCounter{}, births, newIDCardTable(), fakeDeathCounter{}, nil, nil, quietLogger())
	snap, err := svc.Compute(context.Background(), statsAsOf)

	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Male)
	assert.Equal(t, int64(1), snap.Female)
	assert.False(t, snap.Partial)
}

func TestStatsMixedCaseGenders(t *testing.T) {
	births := newBirthTable()
	old := statsAsOf.AddDate(-1, 0, 0)
	for i, g := range []string{"Male", "female", "MALE"} {
		addBirth(t, births, string(rune('A'+i)), g, models.StatusPending, old, old)
	}
	// matching is anchored: "female" is never counted as male
	svc := NewStatsService(fakeUserCounter{}, births, newIDCardTable(), fakeDeathCounter{}, nil, nil, quietLogger())
	snap, err := svc.Compute(context.Background(), statsAsOf)

	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Male)
	assert.Equal(t, int64(1), snap.Female)
	assert.Equal(t, snap.Births.Total, snap.Male+snap.Female)
}

func TestStatsFullSnapshot(t *testing.T) {
	births := newBirthTable()
	ids := newIDCardTable()
	old := statsAsOf.AddDate(0, -2, 0)
	today := statsAsOf.Add(-2 * time.Hour)

	addBirth(t, births, "B1", "Male", models.StatusApproved, old, statsAsOf.AddDate(0, 0, 10))  // expiring
	addBirth(t, births, "B2", "Female", models.StatusApproved, old, statsAsOf.AddDate(0, 0, 40)) // beyond horizon
	addBirth(t, births, "B3", "Female", models.StatusPending, old, statsAsOf.AddDate(0, 0, 5))   // not approved
	addBirth(t, births, "B4", "Male", models.StatusRejected, today, statsAsOf.AddDate(10, 0, 0))
	addBirth(t, births, "B5", "Male", models.StatusApproved, old, statsAsOf.AddDate(0, 0, -1)) // already expired

	for i, st := range []models.RecordStatus{models.StatusPending, models.StatusPending, models.StatusApproved, models.StatusRejected} {
		r := &models.IDCardRecord{}
		r.IDNumber = string(rune('a' + i))
		r.PhotoHash = r.IDNumber
		r.Status = st
		r.CreatedAt = today
		require.NoError(t, ids.Create(context.Background(), r))
	}

	users := fakeUserCounter{
		byRole:   map[models.Role]int64{models.RoleAdmin: 2, models.RoleReviewer: 5, models.RoleDeathRecorder: 1},
		total:    8,
		newToday: 3,
	}
	m := metrics.New(prometheus.NewRegistry())
	svc := NewStatsService(users, births, ids, fakeDeathCounter{total: 6, today: 2}, nil, m, quietLogger())

	snap, err := svc.Compute(context.Background(), statsAsOf)
	require.NoError(t, err)

	assert.Equal(t, int64(5), snap.BirthRecords)
	assert.Equal(t, int64(1), snap.TodaysBirthRequests)
	assert.Equal(t, int64(4), snap.IDRecords)
	assert.Equal(t, int64(4), snap.TodaysIDRequests)
	assert.Equal(t, int64(6), snap.DeathRecords)
	assert.Equal(t, int64(2), snap.TodaysDeathRequests)

	assert.Equal(t, int64(4), snap.VerifiedUsers)        // 3 births + 1 id
	assert.Equal(t, int64(2), snap.RejectedCases)        // 1 + 1
	assert.Equal(t, int64(3), snap.DocsAwaitingApproval) // 1 + 2
	assert.Equal(t, int64(1), snap.DocsAboutToExpire)

	assert.Equal(t, int64(3), snap.NewUsersToday)
	assert.Equal(t, int64(2), snap.TotalAdmins)
	assert.Equal(t, int64(5), snap.TotalReviewers)
	assert.Equal(t, int64(8), snap.TotalUsers)
	assert.Equal(t, int64(0), snap.UsersByRole[models.RoleBirthRecorder])
	assert.Len(t, snap.UsersByRole, len(models.Roles))

	assert.Equal(t, int64(3), snap.Male)
	assert.Equal(t, int64(2), snap.Female)
	assert.Empty(t, snap.Errors)
	assert.Equal(t, 1, testutil.CollectAndCount(m.StatsDuration))
}

func TestStatsCollectAndContinue(t *testing.T) {
	births := newBirthTable()
	old := statsAsOf.AddDate(-1, 0, 0)
	addBirth(t, births, "B1", "Male", models.StatusPending, old, old)
	births.countErr = map[string]error{"gender": apperrors.ErrStoreUnavailable}

	svc := NewStatsService(
		fakeUserCounter{total: 4},
		births,
		newIDCardTable(),
		fakeDeathCounter{err: errors.New("deaths table missing")},
		nil, nil, quietLogger(),
	)

	snap, err := svc.Compute(context.Background(), statsAsOf)

	require.NoError(t, err)
	assert.True(t, snap.Partial)
	assert.Len(t, snap.Errors, 4) // male, female, deaths total, deaths today
	assert.Zero(t, snap.Male)
	assert.Zero(t, snap.DeathRecords)
	assert.Equal(t, int64(1), snap.BirthRecords)
	assert.Equal(t, int64(4), snap.TotalUsers)
}

func TestStatsEverythingFails(t *testing.T) {
	down := apperrors.ErrStoreUnavailable
	births := newBirthTable()
	births.countErr = map[string]error{"total": down, "gender": down, "expiring": down, "today": down, "pending": down, "approved": down, "rejected": down}
	ids := newIDCardTable()
	ids.countErr = births.countErr

	svc := NewStatsService(fakeUserCounter{err: down}, births, ids, fakeDeathCounter{err: down}, nil, nil, quietLogger())
	snap, err := svc.Compute(context.Background(), statsAsOf)

	assert.ErrorIs(t, err, ErrStatsUnavailable)
	require.NotNil(t, snap)
	assert.True(t, snap.Partial)
	assert.Zero(t, snap.BirthRecords)
	assert.Zero(t, snap.TotalUsers)
}

func TestStatsSnapshotUsesCache(t *testing.T) {
	births := newBirthTable()
	cache := &memSnapshotCache{}
	m := metrics.New(prometheus.NewRegistry())
	svc := NewStatsService(fakeUserCounter{total: 1}, births, newIDCardTable(), fakeDeathCounter{}, cache, m, quietLogger())

	first, err := svc.Snapshot(context.Background(), statsAsOf)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	addBirth(t, births, "B1", "Male", models.StatusPending, statsAsOf, statsAsOf)
	second, err := svc.Snapshot(context.Background(), statsAsOf.Add(time.Minute))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatsCacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatsCacheRequests.WithLabelValues("miss")))
}

func TestStatsPartialSnapshotIsNotCached(t *testing.T) {
	cache := &memSnapshotCache{}
	svc := NewStatsService(fakeUserCounter{}, newBirthTable(), newIDCardTable(), fakeDeathCounter{err: errors.New("boom")}, cache, nil, quietLogger())

	snap, err := svc.Snapshot(context.Background(), statsAsOf)

	require.NoError(t, err)
	assert.True(t, snap.Partial)
	assert.Zero(t, cache.sets)
}

func TestDayBounds(t *testing.T) {
	asOf := time.Date(2024, 2, 29, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), dayStart(asOf))
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), dayEnd(asOf))
}
