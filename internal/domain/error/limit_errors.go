// Package error defines domain-specific errors for the finance ledger application.
package error

import "errors"

// Monthly limit domain errors.
var (
	// ErrLimitNotFound is returned when a monthly limit is not found in the system.
	ErrLimitNotFound = errors.New("monthly limit not found")

	// ErrLimitAlreadySet is returned when the user already has an active monthly limit.
	ErrLimitAlreadySet = errors.New("monthly limit already set")

	// ErrInvalidLimitAmount is returned when the limit amount is zero or negative.
	ErrInvalidLimitAmount = errors.New("invalid limit amount")

	// ErrNotAuthorizedToModifyLimit is returned when user is not authorized to modify a limit.
	ErrNotAuthorizedToModifyLimit = errors.New("not authorized to modify monthly limit")
)

// LimitErrorCode defines error codes for monthly limit errors.
// Format: LIM-XXYYYY where XX is category and YYYY is specific error.
type LimitErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeLimitNotFound      LimitErrorCode = "LIM-010001"
	ErrCodeLimitAlreadySet    LimitErrorCode = "LIM-010002"
	ErrCodeInvalidLimitAmount LimitErrorCode = "LIM-010003"
	ErrCodeNotAuthorizedLimit LimitErrorCode = "LIM-010004"
)

// LimitError represents a monthly limit error with code and message.
type LimitError struct {
	Code    LimitErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LimitError) Unwrap() error {
	return e.Err
}

// NewLimitError creates a new LimitError with the given code and message.
func NewLimitError(code LimitErrorCode, message string, err error) *LimitError {
	return &LimitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
