package serrors

import (
	"errors"
	"fmt"
)

// Error codes shared across modules. Controllers map these onto HTTP
// status codes; services return them untouched.
const (
	CodeValidation  = "ERR_VALIDATION"
	CodeNotFound    = "ERR_NOT_FOUND"
	CodePersistence = "ERR_PERSISTENCE"
)

type BaseError struct {
	Code    string
	Message string
	cause   error
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BaseError) Unwrap() error { return e.cause }

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func NewValidationError(message string) *BaseError {
	return &BaseError{Code: CodeValidation, Message: message}
}

func NewNotFoundError(message string) *BaseError {
	return &BaseError{Code: CodeNotFound, Message: message}
}

// NewPersistenceError wraps a storage failure so callers can still reach
// the underlying driver error through errors.Is/As.
func NewPersistenceError(message string, cause error) *BaseError {
	return &BaseError{Code: CodePersistence, Message: message, cause: cause}
}

func HasCode(err error, code string) bool {
	var be *BaseError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsValidation(err error) bool  { return HasCode(err, CodeValidation) }
func IsNotFound(err error) bool    { return HasCode(err, CodeNotFound) }
func IsPersistence(err error) bool { return HasCode(err, CodePersistence) }

// ValidationErrors accumulates per-field failures from DTO validation.
type ValidationErrors map[string]*BaseError

func (v ValidationErrors) Flatten() map[string]string {
	out := make(map[string]string, len(v))
	for field, err := range v {
		out[field] = err.Message
	}
	return out
}

func NewFieldRequiredError(field string) *BaseError {
	return &BaseError{Code: CodeValidation, Message: fmt.Sprintf("%s is required", field)}
}
