package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrForbidden indicates that the actor may not perform the operation
	ErrForbidden = errors.New("forbidden")

	// ErrAuthenticationRequired is returned when an anonymous actor attempts
	// an operation that needs a signed-in redactor. It matches ErrForbidden
	// with errors.Is.
	ErrAuthenticationRequired = fmt.Errorf("%w: authentication required", ErrForbidden)

	// ErrInvalidCredentials indicates a failed username/password check
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ValidationErrors collects every field failure of one input so callers can
// report them together instead of one at a time.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Add records a failure for field.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, &ValidationError{Field: field, Message: message})
}

// Merge appends all failures of other.
func (v *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	v.Errors = append(v.Errors, other.Errors...)
}

// Empty reports whether no failure was recorded.
func (v *ValidationErrors) Empty() bool {
	return v == nil || len(v.Errors) == 0
}

// Err returns v as an error, or nil when nothing failed.
func (v *ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

// Fields returns the sorted, de-duplicated names of the failing fields.
func (v *ValidationErrors) Fields() []string {
	seen := make(map[string]struct{}, len(v.Errors))
	fields := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := seen[e.Field]; ok {
			continue
		}
		seen[e.Field] = struct{}{}
		fields = append(fields, e.Field)
	}
	sort.Strings(fields)
	return fields
}

// ByField groups messages by field name.
func (v *ValidationErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(v.Errors))
	for _, e := range v.Errors {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Has reports whether field has at least one failure.
func (v *ValidationErrors) Has(field string) bool {
	for _, e := range v.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) match collected failures.
func (v *ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationErrors builds a collection holding a single failure.
func NewValidationErrors(field, message string) *ValidationErrors {
	v := &ValidationErrors{}
	v.Add(field, message)
	return v
}

// StoreError wraps an unexpected persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WrapStore wraps err in a StoreError unless it is nil or already a domain error.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrValidationFailed) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// Outcome classifies err into a short label used for metrics and logs.
func Outcome(err error) string {
	var se *StoreError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidationFailed):
		return "validation"
	case errors.Is(err, ErrAuthenticationRequired):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &se):
		return "store"
	default:
		return "error"
	}
}
