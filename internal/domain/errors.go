package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies). Sentinels for conditions that
// carry no extra context; typed errors below for the ones that must name a
// field, a transition pair, or a status.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("permission denied")
)

// ValidationError signals malformed or out-of-range input. The caller can
// recover by correcting the named field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvalidTransitionError signals an illegal invoice status change, naming the
// offending pair.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// EmptyInvoiceError signals an attempt to move an invoice with no line items
// out of draft.
type EmptyInvoiceError struct{}

func (e *EmptyInvoiceError) Error() string {
	return "invoice has no items, cannot leave draft"
}

// ImmutableInvoiceError signals an item mutation on an invoice that is no
// longer in draft.
type ImmutableInvoiceError struct {
	Status string
}

func (e *ImmutableInvoiceError) Error() string {
	return fmt.Sprintf("invoice items are immutable in status %s", e.Status)
}
