package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"civilregistry/internal/metrics"
	"civilregistry/internal/models"
	"civilregistry/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultStatsConcurrency = 4
	expiryHorizonDays       = 30
)

// ErrStatsUnavailable is returned when not a single counter could be read.
var ErrStatsUnavailable = errors.New("stats: every count failed")

type RecordCounter interface {
	Count(ctx context.Context, filter models.RecordFilter) (int64, error)
}

type UserCounter interface {
	Count(ctx context.Context, filter repository.UserFilter) (int64, error)
}

type DeathCounter interface {
	Count(ctx context.Context, from, to time.Time) (int64, error)
}

// SnapshotCache stores complete snapshots. It is optional.
type SnapshotCache interface {
	Get(ctx context.Context, asOf time.Time) (*models.StatsSnapshot, bool, error)
	Set(ctx context.Context, snapshot *models.StatsSnapshot) error
}

type StatsService struct {
	users       UserCounter
	births      RecordCounter
	idCards     RecordCounter
	deaths      DeathCounter
	cache       SnapshotCache
	metrics     *metrics.Metrics
	log         logrus.FieldLogger
	concurrency int
}

func NewStatsService(users UserCounter, births, idCards RecordCounter, deaths DeathCounter, cache SnapshotCache, m *metrics.Metrics, log logrus.FieldLogger) *StatsService {
	return &StatsService{
		users:       users,
		births:      births,
		idCards:     idCards,
		deaths:      deaths,
		cache:       cache,
		metrics:     m,
		log:         log.WithField("component", "stats"),
		concurrency: defaultStatsConcurrency,
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

type countTask struct {
	name string
	dst  *int64
	run  func(ctx context.Context) (int64, error)
}

// Snapshot serves the cached snapshot for asOf's hour when there is one and
// computes a fresh one otherwise. Partial snapshots are never cached.
func (s *StatsService) Snapshot(ctx context.Context, asOf time.Time) (*models.StatsSnapshot, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, asOf)
		if err != nil {
			s.log.WithError(err).Warn("stats cache read failed")
		}
		if hit {
			s.metrics.IncStatsCache("hit")
			return cached, nil
		}
		s.metrics.IncStatsCache("miss")
	}

	snapshot, err := s.Compute(ctx, asOf)
	if err != nil {
		return snapshot, err
	}
	if s.cache != nil && !snapshot.Partial {
		if err := s.cache.Set(ctx, snapshot); err != nil {
			s.log.WithError(err).Warn("stats cache write failed")
		}
	}
	return snapshot, nil
}

// Compute runs every counter in parallel. A failing counter stays at zero,
// is named in Errors and marks the snapshot Partial; the rest still come
// back. The error is non-nil only when every counter failed.
func (s *StatsService) Compute(ctx context.Context, asOf time.Time) (*models.StatsSnapshot, error) {
	started := time.Now()
	snap := &models.StatsSnapshot{AsOf: asOf}
	start, end := dayStart(asOf), dayEnd(asOf)
	roleCounts := make([]int64, len(models.Roles))

	tasks := []countTask{
		{"users_new_today", &snap.NewUsersToday, func(ctx context.Context) (int64, error) {
			return s.users.Count(ctx, repository.UserFilter{CreatedFrom: start, CreatedTo: end})
		}},
		{"users_total", &snap.TotalUsers, func(ctx context.Context) (int64, error) {
			return s.users.Count(ctx, repository.UserFilter{})
		}},
		{"deaths_total", &snap.DeathRecords, func(ctx context.Context) (int64, error) {
			return s.deaths.Count(ctx, time.Time{}, time.Time{})
		}},
		{"deaths_today", &snap.TodaysDeathRequests, func(ctx context.Context) (int64, error) {
			return s.deaths.Count(ctx, start, end)
		}},
		{"births_male", &snap.Male, s.recordCount(s.births, models.RecordFilter{Gender: "male"})},
		{"births_female", &snap.Female, s.recordCount(s.births, models.RecordFilter{Gender: "female"})},
		{"births_expiring", &snap.DocsAboutToExpire, s.recordCount(s.births, models.RecordFilter{
			Status:      models.StatusApproved,
			ExpiresFrom: asOf,
			ExpiresTo:   asOf.AddDate(0, 0, expiryHorizonDays),
		})},
	}
	for i, role := range models.Roles {
		role := role
		tasks = append(tasks, countTask{"users_role_" + string(role), &roleCounts[i], func(ctx context.Context) (int64, error) {
			return s.users.Count(ctx, repository.UserFilter{Role: role})
		}})
	}
	tasks = append(tasks, s.statusTasks("births", s.births, &snap.Births, start, end)...)
	tasks = append(tasks, s.statusTasks("id_cards", s.idCards, &snap.IDCards, start, end)...)

	var (
		mu     sync.Mutex
		failed []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			n, err := task.run(gctx)
			if err != nil {
				mu.Lock()
				failed = append(failed, fmt.Sprintf("%s: %v", task.name, err))
				mu.Unlock()
				return nil
			}
			*task.dst = n
			return nil
		})
	}
	_ = g.Wait()

	snap.UsersByRole = make(map[models.Role]int64, len(models.Roles))
	for i, role := range models.Roles {
		snap.UsersByRole[role] = roleCounts[i]
	}
	snap.TotalAdmins = snap.UsersByRole[models.RoleAdmin]
	snap.TotalReviewers = snap.UsersByRole[models.RoleReviewer]

	snap.BirthRecords = snap.Births.Total
	snap.TodaysBirthRequests = snap.Births.Today
	snap.IDRecords = snap.IDCards.Total
	snap.TodaysIDRequests = snap.IDCards.Today
	snap.VerifiedUsers = snap.Births.Approved + snap.IDCards.Approved
	snap.RejectedCases = snap.Births.Rejected + snap.IDCards.Rejected
	snap.DocsAwaitingApproval = snap.Births.Pending + snap.IDCards.Pending

	s.metrics.ObserveStats(time.Since(started), len(failed))
	if len(failed) > 0 {
		sort.Strings(failed)
		snap.Partial = true
		snap.Errors = failed
		s.log.WithField("failed_counts", len(failed)).Warn("stats snapshot is partial")
	}
	if len(failed) == len(tasks) {
		return snap, ErrStatsUnavailable
	}
	return snap, nil
}

func (s *StatsService) recordCount(counter RecordCounter, filter models.RecordFilter) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return counter.Count(ctx, filter)
	}
}

func (s *StatsService) statusTasks(prefix string, counter RecordCounter, dst *models.StatusCounts, start, end time.Time) []countTask {
	return []countTask{
		{prefix + "_total", &dst.Total, s.recordCount(counter, models.RecordFilter{})},
		{prefix + "_pending", &dst.Pending, s.recordCount(counter, models.RecordFilter{Status: models.StatusPending})},
		{prefix + "_approved", &dst.Approved, s.recordCount(counter, models.RecordFilter{Status: models.StatusApproved})},
		{prefix + "_rejected", &dst.Rejected, s.recordCount(counter, models.RecordFilter{Status: models.StatusRejected})},
		{prefix + "_today", &dst.Today, s.recordCount(counter, models.RecordFilter{CreatedFrom: start, CreatedTo: end})},
	}
}
