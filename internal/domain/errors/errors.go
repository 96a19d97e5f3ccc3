// Package errors defines the application error taxonomy. Every failure in the
// registration and login flows terminates in exactly one of these errors; the
// HTTP layer renders them without ever exposing internal error text.
package errors

import (
	"net/http"

	"roster/internal/errors"
)

// AppError is the interface for classified application errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Machine-readable error code
	Label() string     // Short category label, e.g. "Email already registered"
	Message() string   // User-safe, human-readable message
	Field() string     // Offending field: "email", "password" or "general"
	Details() string   // Internal diagnostics (never sent to clients unless debug is on)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	label     string
	message   string
	field     string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, label, message, field string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		label:     label,
		message:   message,
		field:     field,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the machine-readable error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Label returns the short category label.
func (e *BaseError) Label() string {
	return e.label
}

// Message returns the user-safe error message.
func (e *BaseError) Message() string {
	return e.message
}

// Field returns the offending request field.
func (e *BaseError) Field() string {
	return e.field
}

// Details returns internal diagnostic information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying internal diagnostics.
func (e *BaseError) WithDetails(details string) *BaseError {
	cloned := *e
	cloned.details = details

	return &cloned
}

// Predefined error values. Registration and login report failures exclusively
// through these; the messages are deliberately generic where the taxonomy is
// security-sensitive (InvalidCredentials) and never contain driver output.
var (
	// Input validation errors (InvalidInput kind, 400).
	ErrEmailRequired = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Invalid email",
		"Email address is required and must be a valid string.",
		"email",
	)

	ErrEmailFormat = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Invalid email format",
		"Please provide a valid email address (e.g., user@example.com).",
		"email",
	)

	ErrPasswordRequired = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Invalid password",
		"Password is required and must be a valid string.",
		"password",
	)

	ErrPasswordLength = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Invalid password",
		"Password must be between 8 and 128 characters long.",
		"password",
	)

	// Business-rule errors.
	ErrEmailConflict = NewBaseError(
		http.StatusConflict,
		"EMAIL_CONFLICT",
		"Email already registered",
		"An account with this email address already exists. Please use a different email or try logging in instead.",
		"email",
	)

	// ErrEmailConflictRace is the insert-time variant of ErrEmailConflict,
	// raised when a concurrent registration won the unique-index race between
	// the pre-check and the insert. Same status, label and field; only the
	// human message differs.
	ErrEmailConflictRace = NewBaseError(
		http.StatusConflict,
		"EMAIL_CONFLICT",
		"Email already registered",
		"An account with this email address was just created. Please try logging in instead.",
		"email",
	)

	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// The two cases must stay indistinguishable to prevent account enumeration.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"The email address or password you entered is incorrect. Please check your credentials and try again.",
		"general",
	)

	// Infrastructure errors.
	ErrStorageUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORAGE_UNAVAILABLE",
		"Database operation failed",
		"The service is temporarily unavailable. Please try again later.",
		"general",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"Unable to securely process your password. Please try again.",
		"password",
	)

	ErrPasswordVerifyFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_VERIFY_FAILED",
		"Password verification failed",
		"Unable to verify your password. Please try again.",
		"password",
	)

	ErrAccountCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_CREATION_FAILED",
		"Account creation failed",
		"Unable to create your account due to an unexpected error. Please try again.",
		"general",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred. Please try again later.",
		"general",
	)
)

// StorageError represents a storage-layer failure classified as transient. It
// keeps the underlying cause for server-side logging while presenting the
// generic StorageUnavailable contract to callers.
type StorageError struct {
	err     error
	details string
}

// NewStorageError wraps a database error as a transient storage failure.
func NewStorageError(err error, details string) AppError {
	return &StorageError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return errors.Wrap(e.err, "storage operation failed").Error()
}

// Unwrap exposes the underlying database error to errors.Is/As.
func (e *StorageError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code.
func (e *StorageError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the machine-readable error code.
func (e *StorageError) ErrorCode() string {
	return "STORAGE_UNAVAILABLE"
}

// Label returns the short category label.
func (e *StorageError) Label() string {
	return "Database operation failed"
}

// Message returns the user-safe error message.
func (e *StorageError) Message() string {
	return "The service is temporarily unavailable. Please try again later."
}

// Field returns the offending request field.
func (e *StorageError) Field() string {
	return "general"
}

// Details returns internal diagnostic information.
func (e *StorageError) Details() string {
	return e.details
}

// ValidationError is raised by the boundary-layer DTO validation before the
// core service runs. It carries one message per violated field rule.
type ValidationError struct {
	messages []string
}

// NewValidationError creates a validation error from per-field messages.
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{messages: messages}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message()
}

// Messages returns the individual per-field validation messages.
func (e *ValidationError) Messages() []string {
	return e.messages
}

// HTTPCode returns the HTTP status code.
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the machine-readable error code.
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Label returns the short category label.
func (e *ValidationError) Label() string {
	return "Validation failed"
}

// Message joins the per-field messages into a single string.
func (e *ValidationError) Message() string {
	if len(e.messages) == 0 {
		return "Invalid input provided"
	}

	joined := e.messages[0]
	for _, msg := range e.messages[1:] {
		joined += "; " + msg
	}

	return joined
}

// Field returns the offending request field.
func (e *ValidationError) Field() string {
	return "general"
}

// Details returns internal diagnostic information.
func (e *ValidationError) Details() string {
	return ""
}
