package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrAuthenticationFailure = errors.New("invalid username or password")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionExpired        = errors.New("session expired")
	ErrTokenInvalid          = errors.New("invalid session token")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrPayloadTooLarge  = errors.New("payload too large")

	// Store errors
	ErrConnectionFailure = errors.New("store unreachable")
	ErrStorageFailure    = errors.New("file storage failure")
)

// User errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username already exists")
)

// Course and note errors
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNoteNotFound   = errors.New("note not found")
	ErrFileNotFound   = errors.New("note file not found")
)

// IsNotFound reports whether err is one of the not-found kinds
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound, ErrUserNotFound, ErrCourseNotFound, ErrNoteNotFound, ErrFileNotFound)
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
