package domain

import (
	"errors"
	"fmt"
)

// User-facing validation failures. All are recoverable by correcting input.
var (
	ErrDuplicateAccount   = errors.New("user with such an email already exists")
	ErrPasswordMismatch   = errors.New("password and confirmed password must match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email address is not confirmed")
	ErrConfirmationFailed = errors.New("confirmation link is invalid or has expired")
	ErrInvalidPhone       = errors.New("telephone must contain 10 or 12 digits")
	ErrInvalidBirthday    = errors.New("birthday must be a valid date")
	ErrInvalidPersonCount = errors.New("persons can only be 1 and more")
	ErrPastDate           = errors.New("date cannot be past")
	ErrInvalidDateRange   = errors.New("check out date cannot be earlier than check in date")
	ErrProfileIncomplete  = errors.New("profile is not complete")
	ErrSaveRejected       = errors.New("data did not validate and cannot be saved")
	ErrRoomDataInUse      = errors.New("room type is referenced by existing rooms")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
)

// InvalidNameError reports which profile field failed the letters-only rule.
type InvalidNameError struct {
	Field string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%s may contain letters only", e.Field)
}
