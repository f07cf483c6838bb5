package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes, stable across releases; clients switch on these.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeOAuthNotConfigured = "OAUTH_NOT_CONFIGURED"
	CodeOAuthProviderError = "OAUTH_PROVIDER_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is the typed failure every component throws into. The boundary
// responder recognizes it with errors.As and renders the uniform JSON body;
// anything else is treated as an unexpected defect.
type AppError struct {
	Code    string
	Status  int
	Message string
	Details map[string]any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetails returns a copy carrying structured details
func (e *AppError) WithDetails(details map[string]any) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// AsAppError extracts an *AppError from err, unwrapping as needed
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Status: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Status: http.StatusForbidden, Message: message}
}

func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Status: http.StatusConflict, Message: message}
}

func NewRateLimitError(message string) *AppError {
	return &AppError{Code: CodeRateLimitExceeded, Status: http.StatusTooManyRequests, Message: message}
}

func NewOAuthNotConfiguredError(provider string) *AppError {
	return &AppError{
		Code:    CodeOAuthNotConfigured,
		Status:  http.StatusServiceUnavailable,
		Message: fmt.Sprintf("OAuth provider %s is not configured", provider),
	}
}

func NewOAuthProviderError(message string) *AppError {
	return &AppError{Code: CodeOAuthProviderError, Status: http.StatusBadGateway, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{Code: CodeInternal, Status: http.StatusInternalServerError, Message: message}
}

// Sentinel errors used between services and repositories; handlers and the
// boundary responder translate them into AppError values.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session has expired")
	ErrGroupNotFound      = errors.New("group not found")
)
