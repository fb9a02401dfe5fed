package httpclient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ClientError represents the different failure kinds surfaced by the client.
type ClientError interface {
	error
	Type() ErrorType
}

// ErrorType defines the category of client error.
type ErrorType string

const (
	// NetworkError means no response was obtained (connection, DNS, timeout).
	NetworkError ErrorType = "network"
	// APIError means a response with status >= 400 that is not otherwise refined.
	APIError ErrorType = "api"
	// ValidationError refines a 422 response and carries per-field messages.
	ValidationError ErrorType = "validation"
	// RateLimitError refines a 429 response and carries the retry-after hint.
	RateLimitError ErrorType = "rate_limit"
	// AuthError is raised by the authentication collaborator during token
	// retrieval and passes through the pipeline unchanged.
	AuthError ErrorType = "auth"
)

type networkError struct {
	message string
	wrapped error
}

func (e *networkError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("network error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("network error: %s", e.message)
}

func (e *networkError) Type() ErrorType { return NetworkError }

func (e *networkError) Unwrap() error { return e.wrapped }

type apiError struct {
	message    string
	statusCode int
	body       []byte
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.message, e.statusCode)
}

func (e *apiError) Type() ErrorType { return APIError }

func (e *apiError) StatusCode() int { return e.statusCode }

func (e *apiError) Body() []byte { return e.body }

type validationError struct {
	message     string
	fieldErrors map[string][]string
}

func (e *validationError) Error() string {
	if len(e.fieldErrors) == 0 {
		return fmt.Sprintf("validation error: %s", e.message)
	}
	fields := make([]string, 0, len(e.fieldErrors))
	for field := range e.fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation error: %s (fields: %s)", e.message, strings.Join(fields, ", "))
}

func (e *validationError) Type() ErrorType { return ValidationError }

func (e *validationError) FieldErrors() map[string][]string { return e.fieldErrors }

type rateLimitError struct {
	message    string
	retryAfter int
}

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("rate limit error: %s (retry after: %ds)", e.message, e.retryAfter)
}

func (e *rateLimitError) Type() ErrorType { return RateLimitError }

func (e *rateLimitError) RetryAfterSeconds() int { return e.retryAfter }

type authError struct {
	message string
	wrapped error
}

func (e *authError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("authentication error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("authentication error: %s", e.message)
}

func (e *authError) Type() ErrorType { return AuthError }

func (e *authError) Unwrap() error { return e.wrapped }

// NewNetworkError creates a new network error.
func NewNetworkError(message string, wrapped error) ClientError {
	return &networkError{message: message, wrapped: wrapped}
}

// NewAPIError creates a new API error for a response with status >= 400.
func NewAPIError(message string, statusCode int, body []byte) ClientError {
	return &apiError{message: message, statusCode: statusCode, body: body}
}

// NewValidationError creates a new validation error with per-field messages.
func NewValidationError(message string, fieldErrors map[string][]string) ClientError {
	return &validationError{message: message, fieldErrors: fieldErrors}
}

// NewRateLimitError creates a new rate-limit error carrying the server's
// Retry-After hint in seconds (0 when the header was absent).
func NewRateLimitError(message string, retryAfterSeconds int) ClientError {
	return &rateLimitError{message: message, retryAfter: retryAfterSeconds}
}

// NewAuthError creates a new authentication error.
func NewAuthError(message string, wrapped error) ClientError {
	return &authError{message: message, wrapped: wrapped}
}

// IsErrorType checks if an error is of a specific type.
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type() == errorType
	}
	return false
}

// StatusCode returns the HTTP status carried by an API error.
func StatusCode(err error) (int, bool) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode(), true
	}
	return 0, false
}

// IsAPIStatusError checks if an error is an API error with a specific status.
func IsAPIStatusError(err error, statusCode int) bool {
	code, ok := StatusCode(err)
	return ok && code == statusCode
}

// FieldErrors returns the per-field message lists carried by a validation error.
func FieldErrors(err error) (map[string][]string, bool) {
	var valErr *validationError
	if errors.As(err, &valErr) {
		return valErr.FieldErrors(), true
	}
	return nil, false
}

// RetryAfterSeconds returns the retry-after hint carried by a rate-limit error.
func RetryAfterSeconds(err error) (int, bool) {
	var rlErr *rateLimitError
	if errors.As(err, &rlErr) {
		return rlErr.RetryAfterSeconds(), true
	}
	return 0, false
}
