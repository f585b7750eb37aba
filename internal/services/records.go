package services

import (
	"context"
	"errors"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"

	"github.com/sirupsen/logrus"
)

// StatsInvalidator drops cached dashboard snapshots after a write.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) error { return nil }

func orNoop(inv StatsInvalidator) StatsInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}

// invalidateStats is best effort; a stale snapshot expires with its TTL.
func invalidateStats(ctx context.Context, inv StatsInvalidator, log logrus.FieldLogger) {
	if err := inv.Invalidate(ctx); err != nil {
		log.WithError(err).Warn("failed to invalidate stats cache")
	}
}

func submissionOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, apperrors.ErrDuplicateRecord):
		return "duplicate"
	case errors.Is(err, apperrors.ErrUnderage):
		return "underage"
	case errors.Is(err, apperrors.ErrInvalidExpiryWindow):
		return "invalid_expiry"
	case errors.Is(err, apperrors.ErrPhotoRequired):
		return "photo_missing"
	default:
		return "error"
	}
}

func metricKind(kind models.RecordKind) string {
	if kind == models.KindBirth {
		return "birth"
	}
	return "id_card"
}

// statusListFilter orders each status view by the timestamp that view cares
// about. An empty status lists everything newest first.
func statusListFilter(status models.RecordStatus) models.RecordFilter {
	filter := models.RecordFilter{Status: status, OrderByColumn: "created_at"}
	switch status {
	case models.StatusApproved:
		filter.OrderByColumn = "verified_on"
	case models.StatusRejected:
		filter.OrderByColumn = "rejected_on"
	}
	return filter
}
