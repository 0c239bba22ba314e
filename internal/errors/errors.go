package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials indicates an unknown account or wrong password.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeAccountDisabled indicates the identity provider rejected a disabled account.
	ErrCodeAccountDisabled ErrorCode = "account_disabled"
	// ErrCodeMalformedEmail indicates the email failed provider-side syntax checks.
	ErrCodeMalformedEmail ErrorCode = "malformed_email"
	// ErrCodeWeakPassword indicates the password failed the provider policy.
	ErrCodeWeakPassword ErrorCode = "weak_password"
	// ErrCodeEmailInUse indicates account creation collided with an existing account.
	ErrCodeEmailInUse ErrorCode = "email_in_use"
	// ErrCodeRateLimited indicates the provider throttled the attempt.
	ErrCodeRateLimited ErrorCode = "rate_limited"
	// ErrCodeAccountDeactivated indicates the resolved profile is inactive.
	ErrCodeAccountDeactivated ErrorCode = "account_deactivated"
	// ErrCodeProfileMissing indicates no profile record exists where one is required.
	ErrCodeProfileMissing ErrorCode = "profile_missing"
	// ErrCodeHTTP indicates a non-success response from the REST backend.
	ErrCodeHTTP ErrorCode = "http"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, a
// display-safe message, and an optional cause. It supports error wrapping
// and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message suitable for direct display
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Status is the HTTP status for ErrCodeHTTP errors (0 otherwise)
	Status int
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

// New creates an AppError with a code and display message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// HTTP creates an AppError carrying a backend HTTP status and message.
func HTTP(status int, message string) *AppError {
	return &AppError{Code: ErrCodeHTTP, Message: message, Status: status}
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

// IsAccountDisabled checks if an error is an AccountDisabled error.
func IsAccountDisabled(err error) bool {
	return isCode(err, ErrCodeAccountDisabled)
}

// IsMalformedEmail checks if an error is a MalformedEmail error.
func IsMalformedEmail(err error) bool {
	return isCode(err, ErrCodeMalformedEmail)
}

// IsWeakPassword checks if an error is a WeakPassword error.
func IsWeakPassword(err error) bool {
	return isCode(err, ErrCodeWeakPassword)
}

// IsEmailInUse checks if an error is an EmailInUse error.
func IsEmailInUse(err error) bool {
	return isCode(err, ErrCodeEmailInUse)
}

// IsRateLimited checks if an error is a RateLimited error.
func IsRateLimited(err error) bool {
	return isCode(err, ErrCodeRateLimited)
}

// IsAccountDeactivated checks if an error is an AccountDeactivated error.
func IsAccountDeactivated(err error) bool {
	return isCode(err, ErrCodeAccountDeactivated)
}

// IsProfileMissing checks if an error is a ProfileMissing error.
func IsProfileMissing(err error) bool {
	return isCode(err, ErrCodeProfileMissing)
}

// IsHTTP checks if an error is a backend HTTP error.
func IsHTTP(err error) bool {
	return isCode(err, ErrCodeHTTP)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the HTTP status carried by an error, or 0 if none.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
