// Package error defines domain-specific errors for the P&L engine.
package error

import "errors"

// Settings domain errors.
var (
	// ErrMappingConfigNotFound is returned when a tenant has no saved mapping configuration.
	ErrMappingConfigNotFound = errors.New("mapping configuration not found")
	// ErrInvalidMappingConfig is returned when a mapping configuration fails validation.
	ErrInvalidMappingConfig = errors.New("invalid mapping configuration")
)

// SettingsErrorCode defines error codes for settings errors.
// Format: SET-XXYYYY where XX is category and YYYY is specific error.
type SettingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMappingConfig SettingsErrorCode = "SET-010001"

	// Internal errors (99XXXX)
	ErrCodeSettingsInternalError SettingsErrorCode = "SET-990001"
)

// SettingsError represents a settings error with code and message.
type SettingsError struct {
	Code    SettingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettingsError) Unwrap() error {
	return e.Err
}

// NewSettingsError creates a new SettingsError with the given code and message.
func NewSettingsError(code SettingsErrorCode, message string, err error) *SettingsError {
	return &SettingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
