package httperr

import (
	"errors"
	"fmt"
)

// ===============================
// Business
// ===============================

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ===============================
// Validation
// ===============================

// ValidationError rejects malformed input before it is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func ErrValidation(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// ===============================
// Data unavailable
// ===============================

// DataUnavailableError means an upstream read failed. Availability is
// unknown, not empty; callers may retry.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func ErrDataUnavailable(source string, err error) error {
	return &DataUnavailableError{Source: source, Err: err}
}

func IsDataUnavailable(err error) bool {
	var de *DataUnavailableError
	return errors.As(err, &de)
}

// ===============================
// Conflict
// ===============================

// ConflictError is returned when a slot was taken between read and commit.
type ConflictError struct {
	ResourceID string
	Date       string
	Time       string
}

func (e ConflictError) Error() string {
	if e.ResourceID == "" {
		return fmt.Sprintf("slot %s %s no longer available", e.Date, e.Time)
	}
	return fmt.Sprintf("slot %s %s for %s no longer available", e.Date, e.Time, e.ResourceID)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}
