package model

import "strings"

// Standard error codes for API responses
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeDuplicateItem = "DUPLICATE_ITEM"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure carrying a stable error code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMenuItemNotFound  = NewDomainError(ErrCodeNotFound, "Menu item not found")
	ErrDuplicateMenuItem = NewDomainError(ErrCodeDuplicateItem, "A menu item with this name already exists in this category")
)

// FieldViolation is a single field-level validation failure.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError collects every rule violation found in one request so the
// caller can fix everything in a single round trip.
type ValidationError struct {
	Violations []FieldViolation
}

// Add records a violation against the given field.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// Error joins all violations as "field: message" pairs.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return strings.Join(parts, "; ")
}
