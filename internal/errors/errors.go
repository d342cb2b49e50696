// Package errors provides the typed errors returned by the pricing core.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidQuantity indicates a negative or unparseable quantity
	TypeInvalidQuantity Type = "INVALID_QUANTITY"

	// TypeMissingContainerRate indicates per-container pricing without a container rate
	TypeMissingContainerRate Type = "MISSING_CONTAINER_RATE"

	// TypeMissingMaterial indicates no pricing parameters exist for a material id
	TypeMissingMaterial Type = "MISSING_MATERIAL"

	// TypeInvalidWeight indicates a gross/tare pair that cannot produce a net weight
	TypeInvalidWeight Type = "INVALID_WEIGHT"

	// TypeInvalidParameter indicates a pricing parameter that breaks catalog invariants
	TypeInvalidParameter Type = "INVALID_PARAMETER"

	// TypeParsing indicates a catalog file parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// TypeOf returns the type of the first domain error in err's chain, or "" if none.
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsType checks if an error, or anything it wraps, is of a specific type
func IsType(err error, t Type) bool {
	return err != nil && TypeOf(err) == t
}

// InvalidQuantity creates an invalid quantity error
func InvalidQuantity(format string, args ...interface{}) *Error {
	return Newf(TypeInvalidQuantity, format, args...)
}

// MissingContainerRate creates a missing container rate error for a material
func MissingContainerRate(materialID string) *Error {
	return Newf(TypeMissingContainerRate, "per-container pricing selected but no container rate for %q", materialID).
		WithContext("material", materialID)
}

// MissingMaterial creates a missing material error
func MissingMaterial(materialID string) *Error {
	return Newf(TypeMissingMaterial, "no pricing parameters for material %q", materialID).
		WithContext("material", materialID)
}

// InvalidWeight creates an invalid weight error
func InvalidWeight(format string, args ...interface{}) *Error {
	return Newf(TypeInvalidWeight, format, args...)
}

// InvalidParameter creates an invalid pricing parameter error
func InvalidParameter(field, message string) *Error {
	return Newf(TypeInvalidParameter, "%s: %s", field, message).WithContext("field", field)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
