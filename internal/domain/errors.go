package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking. Every failure the core surfaces
// wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrForbidden    = errors.New("forbidden")
	ErrBusinessRule = errors.New("business rule violation")
	ErrConflict     = errors.New("conflict")
	ErrRepository   = errors.New("repository error")
)

// Shared validation messages.
const (
	MsgRequired     = "is required"
	MsgMustNotEmpty = "must not be empty"
)

// ValidationError provides programmatic access to field-level validation
// failures. Use errors.Is(err, ErrValidation) for simple checks, or
// errors.As(err, &verr) to access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError is a resource-specific not-found failure. The resource name
// ("board", "column", "card") is preserved so callers can distinguish which
// part of the aggregate was missing.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound returns a *NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// BusinessRule returns an error describing an operation that is not permitted
// for the aggregate's current state. It unwraps to ErrBusinessRule.
func BusinessRule(msg string) error {
	return fmt.Errorf("%w: %s", ErrBusinessRule, msg)
}

// RepositoryFailure wraps a storage-layer error so it unwraps to
// ErrRepository while passing the underlying message through opaquely.
func RepositoryFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrRepository, err)
}
