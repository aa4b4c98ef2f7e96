package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// Error codes carried by APIError and echoed as the error_code extension.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimit    = "RATE_LIMIT_EXCEEDED"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeExportFailed = "EXPORT_FAILED"
)

// problemTypes maps an APIError code to its RFC 7807 type. Unlisted codes
// are internal errors.
var problemTypes = map[string]string{
	CodeValidation:   TypeValidation,
	CodeNotFound:     TypeNotFound,
	CodeRateLimit:    TypeRateLimit,
	CodeUnavailable:  TypeServiceDown,
	CodeExportFailed: TypeExportFailed,
}

// APIError is a request-level failure raised by the transport layer, as
// opposed to an AppError coming out of the services.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError names the offending query parameter.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation reports a rejected query parameter as a 400.
func ErrValidation(field, message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeValidation,
		Message:    "Request validation failed",
		Details:    ValidationError{Field: field, Message: message},
	}
}
