package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	ECONFLICT = "conflict"  // 409 - duplicate unique key on create
	ENOTFOUND = "not_found" // 404 - referenced record absent
	EINVALID  = "invalid"   // 400 - bad input outside form validation
	ESTORAGE  = "storage"   // 400 - unexpected persistence failure (hide details)
	EUPSTREAM = "upstream"  // 400 - external address service unreachable or errored
	EINTERNAL = "internal"  // 500 - anything else (hide details)
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., ECONFLICT, ENOTFOUND).
	Code string

	// Message is a human-readable message safe to show to clients.
	Message string

	// Op is the operation where the error occurred (e.g., "encomenda.insert").
	// Used for logging, not shown to clients.
	Op string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for nil or non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a client-facing message from an error.
// Storage and upstream errors already carry a generic message; unknown error
// types fall back to a generic message so nothing internal leaks.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return "Erro interno, tente novamente mais tarde."
		}
		return e.Message
	}

	return "Erro interno, tente novamente mais tarde."
}

// Errorf creates a new domain error with a formatted message.
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a domain error code and operation.
// Preserves the underlying error for logging while the message stays
// client-safe. Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// =============================================================================
// Validation Errors (field-level errors for forms)
// =============================================================================

// FieldError is a single field violation inside a ValidationError.
type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

// ValidationError aggregates every field violation found in a request form.
// Validation is eager: all fields are checked and reported together rather
// than failing on the first bad one.
type ValidationError struct {
	// Fields lists the violations in form-field order.
	Fields []FieldError

	// Op is the operation where validation failed.
	Op string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		f := e.Fields[0]
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %s", e.Op, f.Field, f.Message)
		}
		return fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: validation failed for %d fields", e.Op, len(e.Fields))
	}
	return fmt.Sprintf("validation failed for %d fields", len(e.Fields))
}

// AddFieldError appends a field violation to err.
// If err is nil or not a ValidationError, a new one is created.
func AddFieldError(err error, field, message string) error {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		ve.Fields = append(ve.Fields, FieldError{Field: field, Message: message})
		return ve
	}

	return &ValidationError{
		Fields: []FieldError{{Field: field, Message: message}},
	}
}

// IsValidationError returns true if err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationFields extracts the field violations from a ValidationError.
// Returns nil if err is not a ValidationError.
func GetValidationFields(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// =============================================================================
// Common errors (convenience)
// =============================================================================

// NotFound creates a not found error for a record.
func NotFound(op, message string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: message,
	}
}

// Conflict creates a conflict error.
func Conflict(op, message string) error {
	return &Error{
		Code:    ECONFLICT,
		Op:      op,
		Message: message,
	}
}

// Storage wraps an unexpected persistence failure. The message shown to
// clients stays generic; the underlying error is kept for logging.
func Storage(err error, op, message string) error {
	return &Error{
		Code:    ESTORAGE,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Upstream wraps a failure of the external address service.
func Upstream(err error, op, message string) error {
	return &Error{
		Code:    EUPSTREAM,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
