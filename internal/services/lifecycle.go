package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"
)

// StatusStore is the slice of a record repository the lifecycle needs.
type StatusStore interface {
	Exists(ctx context.Context, id uint) (bool, error)
	TransitionStatus(ctx context.Context, id uint, from models.RecordStatus, change models.StatusChange) (int64, error)
}

// LifecycleManager moves records out of pending. Terminal records never
// change again: approving or rejecting them fails with ErrInvalidTransition.
type LifecycleManager struct {
	store StatusStore
	kind  models.RecordKind
	now   func() time.Time
}

func NewLifecycleManager(kind models.RecordKind, store StatusStore) *LifecycleManager {
	return &LifecycleManager{store: store, kind: kind, now: time.Now}
}

func (m *LifecycleManager) Approve(ctx context.Context, id uint) error {
	now := m.now().UTC()
	return m.transition(ctx, id, models.StatusChange{
		Status:     models.StatusApproved,
		VerifiedOn: &now,
	})
}

func (m *LifecycleManager) Reject(ctx context.Context, id uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.ErrReasonRequired
	}
	now := m.now().UTC()
	return m.transition(ctx, id, models.StatusChange{
		Status:     models.StatusRejected,
		RejectedOn: &now,
		Reason:     reason,
	})
}

// Apply dispatches to Approve or Reject. Pending is not a valid target.
func (m *LifecycleManager) Apply(ctx context.Context, id uint, status models.RecordStatus, reason string) error {
	switch status {
	case models.StatusApproved:
		return m.Approve(ctx, id)
	case models.StatusRejected:
		return m.Reject(ctx, id, reason)
	default:
		return apperrors.ErrInvalidStatus
	}
}

func (m *LifecycleManager) transition(ctx context.Context, id uint, change models.StatusChange) error {
	rows, err := m.store.TransitionStatus(ctx, id, models.StatusPending, change)
	if err != nil {
		return fmt.Errorf("%s %d: %w", m.kind, id, err)
	}
	if rows > 0 {
		return nil
	}

	exists, err := m.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("%s %d: %w", m.kind, id, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrInvalidTransition
}
