package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput       = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized       = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrInvalidCredentials = NewAPIError("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized)
	ErrNotFound           = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrMethodNotAllowed   = NewAPIError("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
	ErrConflict           = NewAPIError("CONFLICT", "Resource conflict", http.StatusConflict)
	ErrInternal           = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrStoreUnavailable   = NewAPIError("STORE_UNAVAILABLE", "User store is unavailable", http.StatusServiceUnavailable)
)

func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return FromError(err)
	}
	return NewAPIError(code, message, status, err.Error())
}

// FromError resolves the APIError carried anywhere in err's chain. The
// result is always a fresh value so sentinels are never mutated; when err
// wraps the APIError with extra context, that context lands in Details.
// Errors without an APIError become ErrInternal.
func FromError(err error) *APIError {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return NewAPIError(ErrInternal.Code, ErrInternal.Message, ErrInternal.Status, err.Error())
	}
	out := *apiErr
	if err != error(apiErr) && out.Details == "" {
		out.Details = err.Error()
	}
	return &out
}
