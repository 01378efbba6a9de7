// Package error defines domain-specific errors for the P&L engine.
package error

import "errors"

// Import domain errors.
var (
	// ErrEmptyImport is returned when an import carries no rows.
	ErrEmptyImport = errors.New("import contains no rows")

	// ErrInvalidSource is returned when the import source is not a known integration.
	ErrInvalidSource = errors.New("invalid import source")

	// ErrInvalidDataType is returned when the data type is not actual, budget or forecast.
	ErrInvalidDataType = errors.New("invalid data type")

	// ErrInvalidTransformConfig is returned when the mapping configuration is malformed.
	ErrInvalidTransformConfig = errors.New("invalid transform configuration")

	// ErrUnsupportedFileType is returned when an uploaded file is neither CSV nor XLSX.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrUnreadableFile is returned when an uploaded file cannot be parsed into rows.
	ErrUnreadableFile = errors.New("file could not be read")

	// ErrSourceFetchFailed is returned when an external integration cannot be read.
	ErrSourceFetchFailed = errors.New("source fetch failed")

	// ErrNoSourcesConfigured is returned when a sync is requested with no integrations.
	ErrNoSourcesConfigured = errors.New("no sources configured")
)

// ImportErrorCode defines error codes for import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyImport            ImportErrorCode = "IMP-010001"
	ErrCodeInvalidSource          ImportErrorCode = "IMP-010002"
	ErrCodeInvalidDataType        ImportErrorCode = "IMP-010003"
	ErrCodeInvalidTransformConfig ImportErrorCode = "IMP-010004"
	ErrCodeMissingImportFields    ImportErrorCode = "IMP-010005"

	// File errors (02XXXX)
	ErrCodeUnsupportedFileType ImportErrorCode = "IMP-020001"
	ErrCodeUnreadableFile      ImportErrorCode = "IMP-020002"

	// Source errors (03XXXX)
	ErrCodeSourceFetchFailed   ImportErrorCode = "IMP-030001"
	ErrCodeNoSourcesConfigured ImportErrorCode = "IMP-030002"

	// Internal errors (99XXXX)
	ErrCodeImportInternalError ImportErrorCode = "IMP-990001"
)

// ImportError represents an import error with code and message.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError with the given code and message.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
