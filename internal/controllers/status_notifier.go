package controllers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"civilregistry/internal/events"
	"civilregistry/internal/models"

	"github.com/sirupsen/logrus"
)

const dispatchTimeout = 30 * time.Second

// StatusNotifier emails the applicant and publishes a status_changed event
// after a review decision. Both run in the background and failures are only
// logged.
type StatusNotifier struct {
	notifier  Notifier
	publisher events.Publisher
	log       logrus.FieldLogger
	wg        sync.WaitGroup
}

func NewStatusNotifier(notifier Notifier, publisher events.Publisher, log logrus.FieldLogger) *StatusNotifier {
	return &StatusNotifier{notifier: notifier, publisher: publisher, log: log.WithField("component", "status_notifier")}
}

func (n *StatusNotifier) StatusChanged(kind models.RecordKind, record models.CivilRecord, actorID uint) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		n.dispatch(ctx, kind, record, actorID)
	}()
}

// Wait blocks until every dispatched notification has finished.
func (n *StatusNotifier) Wait() {
	n.wg.Wait()
}

func (n *StatusNotifier) dispatch(ctx context.Context, kind models.RecordKind, record models.CivilRecord, actorID uint) {
	logEntry := n.log.WithFields(logrus.Fields{"record_id": record.ID, "kind": kind, "status": record.Status})

	if n.publisher != nil {
		event := events.StatusChanged{
			Kind:       string(kind),
			RecordID:   record.ID,
			IDNumber:   record.IDNumber,
			Status:     record.Status.Label(kind),
			Reason:     record.Reason,
			ActorID:    actorID,
			OccurredAt: time.Now().UTC(),
		}
		if err := n.publisher.Publish(ctx, events.RoutingKeyStatusChanged, event); err != nil {
			logEntry.WithError(err).Warn("failed to publish status change")
		}
	}

	if n.notifier != nil && record.Email != "" {
		subject, body := StatusEmail(kind, record)
		if err := n.notifier.Send(ctx, record.Email, subject, body); err != nil {
			logEntry.WithError(err).Warn("failed to send status email")
		}
	}
}

// StatusEmail renders the applicant email for a terminal status.
func StatusEmail(kind models.RecordKind, record models.CivilRecord) (string, string) {
	if record.Status == models.StatusRejected {
		return fmt.Sprintf("Your %s application was rejected", kind),
			fmt.Sprintf("Dear %s,\n\nYour %s application (ID number %s) was rejected.\nReason: %s\n\nPlease correct the details and submit again.",
				record.FullName, kind, record.IDNumber, record.Reason)
	}
	return fmt.Sprintf("Your %s application was approved", kind),
		fmt.Sprintf("Dear %s,\n\nYour %s application (ID number %s) has been approved.",
			record.FullName, kind, record.IDNumber)
}
