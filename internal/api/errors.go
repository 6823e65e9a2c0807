package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/hostreg/internal/registry"
	"evalgo.org/hostreg/internal/validation"
)

// APIError represents a structured API error with HTTP status code.
type APIError struct {
	Code       int                    `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	FieldError map[string]string      `json:"field_errors,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// NewAPIError creates a new API error.
func NewAPIError(code int, message string, details string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func BadRequestError(message, details string) *APIError {
	return NewAPIError(http.StatusBadRequest, message, details)
}

func ValidationError(message string, fieldErrors map[string]string) *APIError {
	return &APIError{
		Code:       http.StatusBadRequest,
		Message:    message,
		FieldError: fieldErrors,
	}
}

func InternalError(message, details string) *APIError {
	return NewAPIError(http.StatusInternalServerError, message, details)
}

// registryStatus maps registry error kinds to HTTP status codes. Callers
// lacking access to a host get 401 like callers without a token.
var registryStatus = []struct {
	kind error
	code int
}{
	{registry.ErrUnauthorized, http.StatusUnauthorized},
	{registry.ErrForbidden, http.StatusUnauthorized},
	{registry.ErrNotFound, http.StatusNotFound},
	{registry.ErrConflict, http.StatusConflict},
	{registry.ErrInvalid, http.StatusBadRequest},
	{registry.ErrPersistence, http.StatusInternalServerError},
}

// FromRegistryError converts a registry error into an APIError, keeping its
// message verbatim.
func FromRegistryError(err *registry.Error) *APIError {
	code := http.StatusInternalServerError
	for _, m := range registryStatus {
		if errors.Is(err, m.kind) {
			code = m.code
			break
		}
	}

	var result *validation.ValidationResult
	if errors.As(err.Err, &result) {
		fields := make(map[string]string, len(result.Errors))
		for _, fe := range result.Errors {
			fields[fe.Field] = fe.Message
		}
		return ValidationError("Validation failed", fields)
	}

	apiErr := &APIError{Code: code, Message: err.Error()}
	if err.Err != nil {
		apiErr.Details = err.Err.Error()
	}
	if errors.Is(err, registry.ErrNotFound) {
		apiErr.Context = map[string]interface{}{"resource": "host"}
	}
	return apiErr
}

// HTTPErrorHandler is a custom error handler for Echo.
func HTTPErrorHandler(err error, c echo.Context) {
	// Don't send response if already sent
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	code := http.StatusInternalServerError

	var he *echo.HTTPError
	var ae *APIError
	var re *registry.Error

	if errors.As(err, &he) {
		code = he.Code
		apiErr = &APIError{
			Code:    code,
			Message: getHTTPMessage(code),
			Details: fmt.Sprintf("%v", he.Message),
		}
	} else if errors.As(err, &ae) {
		apiErr = ae
		code = ae.Code
	} else if errors.As(err, &re) {
		apiErr = FromRegistryError(re)
		code = apiErr.Code
	} else {
		// Generic error
		apiErr = &APIError{
			Code:    code,
			Message: "Internal server error",
			Details: err.Error(),
		}
	}

	// Don't expose internal errors in production
	if code == http.StatusInternalServerError && !c.Echo().Debug {
		apiErr.Details = "An internal error occurred. Please try again later."
	}

	// Send JSON response
	if err := c.JSON(code, apiErr); err != nil {
		c.Logger().Error(err)
	}
}

// getHTTPMessage returns a user-friendly message for HTTP status codes.
func getHTTPMessage(code int) string {
	messages := map[int]string{
		http.StatusBadRequest:          "Bad request",
		http.StatusUnauthorized:        "Unauthorized",
		http.StatusForbidden:           "Forbidden",
		http.StatusNotFound:            "Resource not found",
		http.StatusMethodNotAllowed:    "Method not allowed",
		http.StatusConflict:            "Conflict",
		http.StatusUnprocessableEntity: "Unprocessable entity",
		http.StatusTooManyRequests:     "Too many requests",
		http.StatusInternalServerError: "Internal server error",
		http.StatusBadGateway:          "Bad gateway",
		http.StatusServiceUnavailable:  "Service unavailable",
	}

	if msg, ok := messages[code]; ok {
		return msg
	}
	return http.StatusText(code)
}
