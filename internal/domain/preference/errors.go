package preference

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the failure categories the preference engine recovers
// from. None of them ever reach the caller of a preference operation; they are
// carried to diagnostics only.
type ErrorCode string

const (
	ErrCodeInvalidValue       ErrorCode = "INVALID_VALUE"
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeCookieUnavailable  ErrorCode = "COOKIE_UNAVAILABLE"
	ErrCodeLookupMiss         ErrorCode = "LOOKUP_MISS"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents a typed error enriched with contextual data.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches another DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) {
		return false
	}
	return e.Code == domainErr.Code
}

// NewError constructs a DomainError with the supplied code and message.
func NewError(code ErrorCode, message string, cause error, context map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

func newInvalidValueError(field Field, value string) *DomainError {
	return NewError(ErrCodeInvalidValue, "unrecognized preference token", nil, map[string]interface{}{
		"field": string(field),
		"value": value,
	})
}

func newLookupMissError(field Field, value string) *DomainError {
	return NewError(ErrCodeLookupMiss, "no mapping for preference token", nil, map[string]interface{}{
		"field": string(field),
		"value": value,
	})
}
