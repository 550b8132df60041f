package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Domain errors. Each wraps its taxonomy category so errors.Is matches both
// the specific failure and the category the boundary maps to a status code.
var (
	// Session errors
	ErrSessionNotFound = fmt.Errorf("%w: session not found", ErrResourceNotFound)
	ErrSessionOverlap  = fmt.Errorf("%w: session overlaps with an existing session for this course", ErrConflict)
	ErrOutsideWindow   = fmt.Errorf("%w: authentication outside session time window", ErrPermissionDenied)

	// Student errors
	ErrStudentNotFound      = fmt.Errorf("%w: student not found", ErrResourceNotFound)
	ErrStudentAlreadyExists = fmt.Errorf("%w: student with this matriculation number already exists", ErrResourceAlreadyExists)
	ErrStudentNotEnrolled   = fmt.Errorf("%w: student not enrolled in this course", ErrPermissionDenied)
	ErrInvalidCAMark        = fmt.Errorf("%w: invalid CA mark", ErrPermissionDenied)

	// Course errors
	ErrCourseNotFound = fmt.Errorf("%w: course not found", ErrResourceNotFound)

	// Admin errors
	ErrAdminNotFound       = fmt.Errorf("%w: admin not found", ErrResourceNotFound)
	ErrUsernameAlreadyUsed = fmt.Errorf("%w: username already exists", ErrResourceAlreadyExists)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewAlreadyExistsError creates a new custom error for duplicate resources with a message
func NewAlreadyExistsError(message string) error {
	return &CustomError{
		Err:     ErrResourceAlreadyExists,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
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
	Code    string
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

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
