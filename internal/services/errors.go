package services

import (
	"errors"

	apperrors "github.com/formcraft/formbuilder-service/internal/errors"
	"github.com/formcraft/formbuilder-service/internal/validator"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Form specific errors
	ErrFormNotFound     = errors.New("form not found")
	ErrFormNotPublished = errors.New("form is not published")

	// Question specific errors
	ErrQuestionInvalidType    = errors.New("invalid question type")
	ErrQuestionInvalidContent = errors.New("invalid question content for type")

	// Response specific errors
	ErrResponseNotFound = errors.New("response not found")

	// Upload specific errors
	ErrUploadInvalidImage = errors.New("invalid image format")
	ErrUploadTooLarge     = errors.New("image size exceeds the upload limit")
)

// ErrEmptySubmission is the validation engine's acceptance-floor failure,
// surfaced under the services error taxonomy.
var ErrEmptySubmission = validator.ErrEmptySubmission

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// MalformedEntryError carries the 1-based position of a bad submission entry
type MalformedEntryError = validator.MalformedEntryError

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrFormNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsSubmissionRejected checks if error represents a rejected submission: the
// form is unpublished, nothing was answered, or an entry is malformed.
func IsSubmissionRejected(err error) bool {
	if errors.Is(err, ErrFormNotPublished) || errors.Is(err, ErrEmptySubmission) {
		return true
	}
	var me *MalformedEntryError
	return errors.As(err, &me)
}
