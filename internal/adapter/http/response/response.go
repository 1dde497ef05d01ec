// Package response provides standardized HTTP response builders for the flight
// KPI API. It centralizes response formatting to ensure consistency across all
// endpoints.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific error details (for validation errors)
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidationError = "validation_error"
	CodeNoData          = "no_data"
	CodeNoUsableData    = "no_usable_data"
	CodeSchemaError     = "schema_error"
	CodeInternalError   = "internal_error"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgValidationFailed   = "Request validation failed"
	MsgNoData             = "No dataset loaded"
	MsgInternalError      = "An unexpected error occurred"
)

// OK writes a 200 OK response with the given payload.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}
