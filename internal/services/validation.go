package services

import (
	"context"
	"fmt"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"
	"civilregistry/internal/utils"
)

const (
	minAgeAtIssueYears = 15
	validityYears      = 10
)

// DuplicateFinder looks up an existing record sharing the ID number or the
// photo fingerprint. excludeID skips the record being updated.
type DuplicateFinder interface {
	ExistsByIDNumberOrPhotoHash(ctx context.Context, idNumber, photoHash string, excludeID uint) (bool, error)
}

// Submission is what the validator needs to accept or refuse a record.
type Submission struct {
	Kind         models.RecordKind
	IDNumber     string
	DateOfBirth  time.Time
	DateOfIssue  time.Time
	DateOfExpiry time.Time
	Photo        []byte
	ExcludeID    uint
}

type Validator struct {
	finder DuplicateFinder
}

func NewValidator(finder DuplicateFinder) *Validator {
	return &Validator{finder: finder}
}

// Validate fingerprints the photo, checks for duplicates and, for birth
// certificates, the age and validity rules. It returns the fingerprint to be
// stored with the record. Nothing is written.
func (v *Validator) Validate(ctx context.Context, sub Submission) (string, error) {
	if len(sub.Photo) == 0 {
		return "", apperrors.ErrPhotoRequired
	}
	photoHash := utils.PhotoFingerprint(sub.Photo)

	if err := v.CheckDuplicate(ctx, sub.IDNumber, photoHash, sub.ExcludeID); err != nil {
		return "", err
	}

	if sub.Kind == models.KindBirth {
		if err := CheckBirthRules(sub.DateOfBirth, sub.DateOfIssue, sub.DateOfExpiry); err != nil {
			return "", err
		}
	}
	return photoHash, nil
}

// CheckDuplicate fails with ErrDuplicateRecord when another record holds
// idNumber or photoHash.
func (v *Validator) CheckDuplicate(ctx context.Context, idNumber, photoHash string, excludeID uint) error {
	exists, err := v.finder.ExistsByIDNumberOrPhotoHash(ctx, idNumber, photoHash, excludeID)
	if err != nil {
		return fmt.Errorf("duplicate lookup: %w", err)
	}
	if exists {
		return apperrors.ErrDuplicateRecord
	}
	return nil
}

// CheckBirthRules compares calendar years only; months and days are ignored.
func CheckBirthRules(dateOfBirth, dateOfIssue, dateOfExpiry time.Time) error {
	if dateOfIssue.Year()-dateOfBirth.Year() < minAgeAtIssueYears {
		return apperrors.ErrUnderage
	}
	if dateOfExpiry.Year()-dateOfIssue.Year() != validityYears {
		return apperrors.ErrInvalidExpiryWindow
	}
	return nil
}
