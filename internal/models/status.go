package models

import (
	"civilregistry/internal/apperrors"
	"strings"
	"time"
)

// RecordStatus is the lifecycle state shared by birth and ID card records.
type RecordStatus string

const (
	StatusPending  RecordStatus = "pending"
	StatusApproved RecordStatus = "approved"
	StatusRejected RecordStatus = "rejected"
)

// RecordKind identifies which collection a record lives in.
type RecordKind string

const (
	KindBirth  RecordKind = "Birth Certificate"
	KindIDCard RecordKind = "ID Card"
)

// Label returns the status as shown for the given record kind. Birth
// certificates have always been called "verified" once approved.
func (s RecordStatus) Label(kind RecordKind) string {
	if s == StatusApproved && kind == KindBirth {
		return "verified"
	}
	return string(s)
}

// ParseStatus accepts the canonical values plus "verified" as an alias of approved.
func ParseStatus(raw string) (RecordStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, nil
	case "approved", "verified":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return "", apperrors.ErrInvalidStatus
	}
}

// StatusChange is the set of columns written by a lifecycle transition.
type StatusChange struct {
	Status     RecordStatus
	VerifiedOn *time.Time
	RejectedOn *time.Time
	Reason     string
}
