package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeValidation covers invalid analysis settings: out-of-range crop
	// percentages, section counts, unknown method names. Fatal before any
	// image is processed.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeUnreadableImage means the decode capability returned no usable
	// pixel data; the batch logs and skips the image.
	ErrorTypeUnreadableImage ErrorType = "unreadable_image"
	// ErrorTypeDegenerateRegion means cropping left a zero-area analysis
	// region, so tiling cannot proceed for that image.
	ErrorTypeDegenerateRegion ErrorType = "degenerate_region"
	// ErrorTypeMalformedReport means a persisted report failed schema or
	// coordinate-coverage validation during heatmap generation.
	ErrorTypeMalformedReport ErrorType = "malformed_report"
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeInternal        ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnreadableImageError creates an error for an image that could not be
// decoded into pixels.
func NewUnreadableImageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnreadableImage,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewDegenerateRegionError creates an error for a zero-area crop result.
func NewDegenerateRegionError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDegenerateRegion,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewMalformedReportError creates an error for a report that failed
// validation on the way into heatmap generation.
func NewMalformedReportError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedReport,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
