package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeNotesError = "NOTES_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
)

type NotesError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *NotesError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *NotesError) Unwrap() error {
	return e.Cause
}

func NewNotesError(message, code string, statusCode int, context map[string]any) *NotesError {
	return &NotesError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *NotesError) WithCause(cause error) *NotesError {
	e.Cause = cause
	return e
}

type APIError struct {
	*NotesError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		NotesError: &NotesError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

// WithCause keeps the *APIError type so callers can still match it with errors.As.
func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

type ValidationError struct {
	*NotesError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		NotesError: &NotesError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*NotesError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		NotesError: &NotesError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*NotesError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		NotesError: &NotesError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// StatusCode returns the HTTP status carried by an APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
