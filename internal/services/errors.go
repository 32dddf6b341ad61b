package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/table"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrReferenceNotFound  = errors.New("referenced record not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = auth.ErrInvalidCredentials
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// ValidationError is a client error tied to one request field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// storeError converts store sentinels into service errors naming the record.
func storeError(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s %s %w", entity, id, ErrNotFound)
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%w: %s %s already exists", ErrConflict, entity, id)
	}
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// queryError turns a rejected table query into a ValidationError.
func queryError(err error) error {
	var qe *table.QueryError
	if errors.As(err, &qe) {
		return &ValidationError{Field: qe.Field, Message: qe.Message}
	}
	return err
}
