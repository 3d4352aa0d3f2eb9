package booking

import (
	"context"
	"regexp"
	"strings"

	"devhub/apperr"
	"devhub/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EventChecker answers whether an event exists. It is the only thing the
// booking side needs to know about events.
type EventChecker interface {
	EventExists(ctx context.Context, id string) (bool, error)
}

// EventCheckerFunc adapts a function to EventChecker.
type EventCheckerFunc func(ctx context.Context, id string) (bool, error)

func (f EventCheckerFunc) EventExists(ctx context.Context, id string) (bool, error) {
	return f(ctx, id)
}

// NormalizeEmail trims and lower-cases raw and checks it has the
// local@domain.tld shape.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperr.Invalid(models.FieldEmail, "email is required")
	}
	if !emailPattern.MatchString(email) {
		return "", apperr.Invalid(models.FieldEmail, "please provide a valid email address")
	}
	return email, nil
}

// CheckEventReference verifies that the event id points at a stored event.
// A lookup failure is reported apart from a genuine miss.
func CheckEventReference(ctx context.Context, checker EventChecker, eventID string) error {
	exists, err := checker.EventExists(ctx, eventID)
	if err != nil {
		return &apperr.ReferenceError{Reason: "error validating event reference", Err: err}
	}
	if !exists {
		return &apperr.ReferenceError{Reason: "referenced event does not exist"}
	}
	return nil
}
