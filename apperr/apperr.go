package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing input detected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ReferenceError reports a dangling or unverifiable foreign reference.
type ReferenceError struct {
	Reason string
	Err    error
}

func (e *ReferenceError) Error() string { return e.Reason }

func (e *ReferenceError) Unwrap() error { return e.Err }

// ConflictError reports a uniqueness violation raised by the store.
type ConflictError struct {
	Reason string
	Err    error
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Unwrap() error { return e.Err }

// FromMongo turns a duplicate key failure into a ConflictError carrying reason.
// Every other error is returned unchanged.
func FromMongo(err error, reason string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return &ConflictError{Reason: reason, Err: err}
	}
	return err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsReference(err error) bool {
	var r *ReferenceError
	return errors.As(err, &r)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// Status maps an error to the HTTP status the handlers answer with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsReference(err):
		return http.StatusUnprocessableEntity
	case IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
