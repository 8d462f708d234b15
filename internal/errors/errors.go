package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials indicates no account kind verified the
	// submitted password. Deliberately generic: it must not reveal whether
	// the email exists, nor in which kinds.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeTicketInvalid indicates a selection ticket that is missing,
	// malformed, wrongly signed, or expired. The caller must restart login.
	ErrCodeTicketInvalid ErrorCode = "ticket_invalid"
	// ErrCodeSelectionNotOffered indicates a selected role/entity pair that
	// was not part of the ticket's own candidate set.
	ErrCodeSelectionNotOffered ErrorCode = "selection_not_offered"
	// ErrCodeRepositoryUnavailable indicates a degraded account store for
	// one kind; resolution continues with the kinds that did respond.
	ErrCodeRepositoryUnavailable ErrorCode = "repository_unavailable"
	// ErrCodeSigningKey indicates token signing misconfiguration. Fatal for
	// the request; never surfaced to the caller as a credentials problem.
	ErrCodeSigningKey ErrorCode = "signing_key_misconfigured"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message safe to show the caller
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// InvalidCredentials creates the single generic credentials rejection.
// The message is fixed on purpose: "email unknown", "password wrong", and
// "email known in a different kind" must be indistinguishable.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:    ErrCodeInvalidCredentials,
		Message: "invalid email or password",
	}
}

// TicketInvalid creates a TicketInvalid error wrapping the verification
// failure. The cause is for server-side logs only.
func TicketInvalid(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeTicketInvalid,
		Message: "selection ticket is invalid or expired",
		Cause:   cause,
	}
}

// SelectionNotOffered creates a SelectionNotOffered error.
func SelectionNotOffered() *AppError {
	return &AppError{
		Code:    ErrCodeSelectionNotOffered,
		Message: "the selected role was not offered for this login",
	}
}

// RepositoryUnavailable wraps a degraded per-kind account store failure.
func RepositoryUnavailable(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeRepositoryUnavailable,
		Message: "account store unavailable",
		Cause:   cause,
	}
}

// SigningKey wraps a token signing failure.
func SigningKey(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeSigningKey,
		Message: "token signing failed",
		Cause:   cause,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	return isCode(err, ErrCodeInvalidCredentials)
}

// IsTicketInvalid checks if an error is a TicketInvalid error.
func IsTicketInvalid(err error) bool {
	return isCode(err, ErrCodeTicketInvalid)
}

// IsSelectionNotOffered checks if an error is a SelectionNotOffered error.
func IsSelectionNotOffered(err error) bool {
	return isCode(err, ErrCodeSelectionNotOffered)
}

// IsRepositoryUnavailable checks if an error is a RepositoryUnavailable error.
func IsRepositoryUnavailable(err error) bool {
	return isCode(err, ErrCodeRepositoryUnavailable)
}

// IsAppError checks if an error is an AppError with the given code.
func IsAppError(err error, code ErrorCode) bool {
	return isCode(err, code)
}

// GetCode extracts the ErrorCode from an error, or ErrCodeInternal if the
// error is not an AppError. Returns empty string for nil.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
