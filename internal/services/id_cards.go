package services

import (
	"context"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/metrics"
	"civilregistry/internal/models"
	"civilregistry/internal/repository"
	"civilregistry/internal/utils"

	"github.com/sirupsen/logrus"
)

// PhotoStore persists ID card photos and hands back the stored reference.
type PhotoStore interface {
	Save(ctx context.Context, data []byte, originalName string) (string, error)
	Remove(path string) error
}

// Photo is an uploaded image and the client-side file name.
type Photo struct {
	Data []byte
	Name string
}

type IDCardService struct {
	repo      repository.IDCardRepository
	photos    PhotoStore
	validator *Validator
	lifecycle *LifecycleManager
	stats     StatsInvalidator
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
}

func NewIDCardService(repo repository.IDCardRepository, photos PhotoStore, stats StatsInvalidator, m *metrics.Metrics, log logrus.FieldLogger) *IDCardService {
	return &IDCardService{
		repo:      repo,
		photos:    photos,
		validator: NewValidator(repo),
		lifecycle: NewLifecycleManager(models.KindIDCard, repo),
		stats:     orNoop(stats),
		metrics:   m,
		log:       log.WithField("component", "id_cards"),
	}
}

// Submit validates the application, stores the photo and inserts the record
// as pending. The photo file is removed again if the insert fails.
func (s *IDCardService) Submit(ctx context.Context, in models.RecordInput, photo Photo) (*models.IDCardRecord, error) {
	photoHash, err := s.validator.Validate(ctx, Submission{
		Kind:     models.KindIDCard,
		IDNumber: in.IDNumber,
		Photo:    photo.Data,
	})
	if err != nil {
		s.metrics.IncSubmission("id_card", submissionOutcome(err))
		return nil, err
	}

	photoPath, err := s.photos.Save(ctx, photo.Data, photo.Name)
	if err != nil {
		s.metrics.IncSubmission("id_card", submissionOutcome(err))
		return nil, err
	}

	record := &models.IDCardRecord{PhotoPath: photoPath}
	in.Apply(&record.CivilRecord)
	record.PhotoHash = photoHash
	record.Status = models.StatusPending

	err = s.repo.Create(ctx, record)
	s.metrics.IncSubmission("id_card", submissionOutcome(err))
	if err != nil {
		s.removePhoto(photoPath)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"record_id": record.ID, "id_number": record.IDNumber}).Info("id card application submitted")
	invalidateStats(ctx, s.stats, s.log)
	return record, nil
}

func (s *IDCardService) Get(ctx context.Context, id uint) (*models.IDCardRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *IDCardService) List(ctx context.Context, status models.RecordStatus) ([]models.IDCardRecord, error) {
	return s.repo.List(ctx, statusListFilter(status))
}

// Update rewrites the descriptive fields and optionally the photo. Status
// columns cannot be changed here.
func (s *IDCardService) Update(ctx context.Context, id uint, in models.RecordInput, photo *Photo) (*models.IDCardRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	photoHash := record.PhotoHash
	if photo != nil && len(photo.Data) > 0 {
		photoHash = utils.PhotoFingerprint(photo.Data)
	}
	if err := s.validator.CheckDuplicate(ctx, in.IDNumber, photoHash, id); err != nil {
		return nil, err
	}

	oldPath := record.PhotoPath
	newPath := ""
	if photoHash != record.PhotoHash {
		if newPath, err = s.photos.Save(ctx, photo.Data, photo.Name); err != nil {
			return nil, err
		}
		record.PhotoPath = newPath
		record.PhotoHash = photoHash
	}
	in.Apply(&record.CivilRecord)

	if err := s.repo.UpdateDetails(ctx, record); err != nil {
		if newPath != "" {
			s.removePhoto(newPath)
		}
		return nil, err
	}
	if newPath != "" {
		s.removePhoto(oldPath)
	}

	s.log.WithField("record_id", id).Info("id card application updated")
	invalidateStats(ctx, s.stats, s.log)
	return record, nil
}

func (s *IDCardService) Delete(ctx context.Context, id uint) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removePhoto(record.PhotoPath)
	s.log.WithField("record_id", id).Info("id card application deleted")
	invalidateStats(ctx, s.stats, s.log)
	return nil
}

func (s *IDCardService) Approve(ctx context.Context, id uint) (*models.IDCardRecord, error) {
	return s.afterTransition(ctx, id, s.lifecycle.Approve(ctx, id))
}

func (s *IDCardService) Reject(ctx context.Context, id uint, reason string) (*models.IDCardRecord, error) {
	return s.afterTransition(ctx, id, s.lifecycle.Reject(ctx, id, reason))
}

// SetStatus accepts only "approved" and "rejected".
func (s *IDCardService) SetStatus(ctx context.Context, id uint, rawStatus, reason string) (*models.IDCardRecord, error) {
	status := models.RecordStatus(rawStatus)
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.afterTransition(ctx, id, s.lifecycle.Apply(ctx, id, status, reason))
}

func (s *IDCardService) afterTransition(ctx context.Context, id uint, err error) (*models.IDCardRecord, error) {
	if err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats, s.log)

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.IncTransition("id_card", string(record.Status))
	s.log.WithFields(logrus.Fields{"record_id": id, "status": record.Status}).Info("id card status changed")
	return record, nil
}

func (s *IDCardService) DeleteByIDNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	n, err := s.repo.DeleteByIDNumberPrefix(ctx, prefix)
	if err == nil && n > 0 {
		invalidateStats(ctx, s.stats, s.log)
	}
	return n, err
}

func (s *IDCardService) removePhoto(path string) {
	if err := s.photos.Remove(path); err != nil {
		s.log.WithError(err).WithField("photo_path", path).Warn("failed to remove photo")
	}
}
