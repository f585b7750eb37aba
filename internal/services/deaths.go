package services

import (
	"context"
	"strings"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"
	"civilregistry/internal/repository"

	"github.com/sirupsen/logrus"
)

// DeathService manages death records. They have no review workflow but the
// serial number is unique across the table.
type DeathService struct {
	repo  repository.DeathRecordRepository
	stats StatsInvalidator
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewDeathService(repo repository.DeathRecordRepository, stats StatsInvalidator, log logrus.FieldLogger) *DeathService {
	return &DeathService{
		repo:  repo,
		stats: orNoop(stats),
		log:   log.WithField("component", "deaths"),
		now:   time.Now,
	}
}

func (s *DeathService) Create(ctx context.Context, record *models.DeathRecord) error {
	record.ID = 0
	record.SerialNumber = strings.TrimSpace(record.SerialNumber)
	if err := s.checkSerial(ctx, record.SerialNumber, 0); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"record_id": record.ID, "serial_number": record.SerialNumber}).Info("death record created")
	invalidateStats(ctx, s.stats, s.log)
	return nil
}

func (s *DeathService) Update(ctx context.Context, id uint, in models.DeathRecord) (*models.DeathRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	serial := strings.TrimSpace(in.SerialNumber)
	if serial != record.SerialNumber {
		if err := s.checkSerial(ctx, serial, id); err != nil {
			return nil, err
		}
	}

	record.SerialNumber = serial
	record.Name = in.Name
	record.Gender = in.Gender
	record.DateOfDeath = in.DateOfDeath
	record.Location = in.Location
	record.Reason = in.Reason
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *DeathService) checkSerial(ctx context.Context, serial string, excludeID uint) error {
	taken, err := s.repo.SerialTaken(ctx, serial, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrDuplicateRecord
	}
	return nil
}

func (s *DeathService) Get(ctx context.Context, id uint) (*models.DeathRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DeathService) List(ctx context.Context) ([]models.DeathRecord, error) {
	return s.repo.List(ctx, time.Time{}, time.Time{})
}

// Today lists deaths whose date of death falls on the current local day.
func (s *DeathService) Today(ctx context.Context) ([]models.DeathRecord, error) {
	start := dayStart(s.now())
	return s.repo.List(ctx, start, start.AddDate(0, 0, 1))
}

func (s *DeathService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("record_id", id).Info("death record deleted")
	invalidateStats(ctx, s.stats, s.log)
	return nil
}

func (s *DeathService) DeleteBySerialPrefix(ctx context.Context, prefix string) (int64, error) {
	n, err := s.repo.DeleteBySerialPrefix(ctx, prefix)
	if err == nil && n > 0 {
		invalidateStats(ctx, s.stats, s.log)
	}
	return n, err
}
