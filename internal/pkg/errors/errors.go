package errors

import (
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`

	cause error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying driver or I/O error.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches AppErrors by code so wrapped copies still satisfy errors.Is
// against the package sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails returns a copy of e carrying details; sentinels stay untouched.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of sentinel that records cause.
func Wrap(sentinel *AppError, cause error) *AppError {
	cp := *sentinel
	cp.cause = cause
	return &cp
}

// Cause returns the wrapped error message, or the AppError message when
// nothing was wrapped. Used for user-facing notices.
func (e *AppError) Cause() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Message
}

// CauseOf returns Cause of the first AppError in the chain, or err.Error().
func CauseOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Cause()
	}
	return err.Error()
}
