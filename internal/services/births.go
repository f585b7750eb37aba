package services

import (
	"context"

	"civilregistry/internal/metrics"
	"civilregistry/internal/models"
	"civilregistry/internal/repository"

	"github.com/sirupsen/logrus"
)

type BirthService struct {
	repo      repository.BirthRepository
	validator *Validator
	lifecycle *LifecycleManager
	stats     StatsInvalidator
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
}

func NewBirthService(repo repository.BirthRepository, stats StatsInvalidator, m *metrics.Metrics, log logrus.FieldLogger) *BirthService {
	return &BirthService{
		repo:      repo,
		validator: NewValidator(repo),
		lifecycle: NewLifecycleManager(models.KindBirth, repo),
		stats:     orNoop(stats),
		metrics:   m,
		log:       log.WithField("component", "births"),
	}
}

// Submit validates and stores a new birth certificate as pending. A concurrent
// submission that slips past the lookup is caught by the unique indexes and
// reported as ErrDuplicateRecord too.
func (s *BirthService) Submit(ctx context.Context, in models.RecordInput, photo []byte) (*models.BirthRecord, error) {
	photoHash, err := s.validator.Validate(ctx, Submission{
		Kind:         models.KindBirth,
		IDNumber:     in.IDNumber,
		DateOfBirth:  in.DateOfBirth,
		DateOfIssue:  in.DateOfIssue,
		DateOfExpiry: in.DateOfExpiry,
		Photo:        photo,
	})
	if err != nil {
		s.metrics.IncSubmission("birth", submissionOutcome(err))
		return nil, err
	}

	record := &models.BirthRecord{}
	in.Apply(&record.CivilRecord)
	record.PhotoHash = photoHash
	record.Status = models.StatusPending

	err = s.repo.Create(ctx, record)
	s.metrics.IncSubmission("birth", submissionOutcome(err))
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"record_id": record.ID, "id_number": record.IDNumber}).Info("birth certificate submitted")
	invalidateStats(ctx, s.stats, s.log)
	return record, nil
}

func (s *BirthService) Get(ctx context.Context, id uint) (*models.BirthRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns records in status, or all records when status is empty.
func (s *BirthService) List(ctx context.Context, status models.RecordStatus) ([]models.BirthRecord, error) {
	return s.repo.List(ctx, statusListFilter(status))
}

func (s *BirthService) Approve(ctx context.Context, id uint) (*models.BirthRecord, error) {
	return s.afterTransition(ctx, id, s.lifecycle.Approve(ctx, id))
}

func (s *BirthService) Reject(ctx context.Context, id uint, reason string) (*models.BirthRecord, error) {
	return s.afterTransition(ctx, id, s.lifecycle.Reject(ctx, id, reason))
}

// SetStatus accepts "approved", "verified" or "rejected".
func (s *BirthService) SetStatus(ctx context.Context, id uint, rawStatus, reason string) (*models.BirthRecord, error) {
	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.afterTransition(ctx, id, s.lifecycle.Apply(ctx, id, status, reason))
}

func (s *BirthService) afterTransition(ctx context.Context, id uint, err error) (*models.BirthRecord, error) {
	if err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats, s.log)

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.IncTransition("birth", string(record.Status))
	s.log.WithFields(logrus.Fields{"record_id": id, "status": record.Status}).Info("birth certificate status changed")
	return record, nil
}

func (s *BirthService) DeleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	n, err := s.repo.DeleteByIDNumberPrefix(ctx, prefix)
	if err == nil && n > 0 {
		invalidateStats(ctx, s.stats, s.log)
	}
	return n, err
}
