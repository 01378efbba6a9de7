// Package error defines domain-specific errors for the P&L engine.
package error

import "errors"

// Taxonomy domain errors.
var (
	// ErrTaxonomyCategoryNotFound is returned when a taxonomy category is not found.
	ErrTaxonomyCategoryNotFound = errors.New("taxonomy category not found")

	// ErrTaxonomyNameExists is returned when a tenant already has a category with the name.
	ErrTaxonomyNameExists = errors.New("taxonomy category name already exists")

	// ErrTaxonomyNameTooLong is returned when the category name exceeds the maximum length.
	ErrTaxonomyNameTooLong = errors.New("taxonomy category name too long")

	// ErrInvalidSection is returned when a section hint is not Revenue or Expenses.
	ErrInvalidSection = errors.New("section must be Revenue or Expenses")

	// ErrNotAuthorizedToModifyTaxonomy is returned when the category belongs to another tenant.
	ErrNotAuthorizedToModifyTaxonomy = errors.New("not authorized to modify taxonomy category")
)

// TaxonomyErrorCode defines error codes for taxonomy errors.
// Format: TAX-XXYYYY where XX is category and YYYY is specific error.
type TaxonomyErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTaxonomyNameTooLong   TaxonomyErrorCode = "TAX-010001"
	ErrCodeInvalidSection        TaxonomyErrorCode = "TAX-010002"
	ErrCodeTaxonomyNotFound      TaxonomyErrorCode = "TAX-010003"
	ErrCodeTaxonomyNameExists    TaxonomyErrorCode = "TAX-010004"
	ErrCodeNotAuthorizedTaxonomy TaxonomyErrorCode = "TAX-010005"
	ErrCodeMissingTaxonomyFields TaxonomyErrorCode = "TAX-010006"
)

// TaxonomyError represents a taxonomy error with code and message.
type TaxonomyError struct {
	Code    TaxonomyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TaxonomyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TaxonomyError) Unwrap() error {
	return e.Err
}

// NewTaxonomyError creates a new TaxonomyError with the given code and message.
func NewTaxonomyError(code TaxonomyErrorCode, message string, err error) *TaxonomyError {
	return &TaxonomyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
