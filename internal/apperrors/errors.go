// Package apperrors holds the sentinel errors shared by the record store,
// the services and the HTTP layer. Controllers map them to status codes with
// errors.Is, so wrap them with %w rather than replacing them.
package apperrors

import "errors"

var (
	// Submission validation
	ErrDuplicateRecord     = errors.New("duplicate ID number or photo")
	ErrUnderage            = errors.New("must be at least 15 years old at the date of issue")
	ErrInvalidExpiryWindow = errors.New("expiry must be 10 years after the issue date")
	ErrPhotoRequired       = errors.New("photo is required")

	// Lifecycle
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("record is not pending")
	ErrReasonRequired    = errors.New("a rejection reason is required")
	ErrInvalidStatus     = errors.New("invalid status value")

	// Store
	ErrStoreUnavailable = errors.New("record store unavailable")

	// Accounts
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// IsValidation reports whether err is a caller-correctable submission error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnderage) ||
		errors.Is(err, ErrInvalidExpiryWindow) ||
		errors.Is(err, ErrPhotoRequired) ||
		errors.Is(err, ErrReasonRequired) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrWrongPassword) ||
		errors.Is(err, ErrPasswordTooShort)
}
