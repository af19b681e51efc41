package apperr

import (
	"errors"
	"fmt"
)

// Error kinds shared by every domain package. Domain sentinels wrap one of
// these with %w so handlers can map them with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrStorage             = errors.New("storage failure")
	ErrValidation          = errors.New("validation failed")
	ErrUnauthenticated     = errors.New("unauthenticated")
)

// StorageError wraps a failure reported by a record store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Storage wraps err as a StorageError. Errors that already carry a kind are
// returned unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) || errors.Is(err, ErrValidation) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(field, message string) error {
	return ValidationError{Field: field, Message: message}
}
