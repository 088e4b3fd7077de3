package types

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure outside the function bodies.
type ErrorCode string

// Error codes.
const (
	// F0xxx: registry / function definition errors
	ErrUndefinedFunction ErrorCode = "F0101"
	ErrDuplicateFunction ErrorCode = "F0102"
	ErrInvalidFunction   ErrorCode = "F0103"

	// D3xxx: date transform errors
	ErrInvalidDatePattern ErrorCode = "D3101"
	ErrDateParse          ErrorCode = "D3102"
	ErrUnknownTimezone    ErrorCode = "D3103"

	// B0xxx: batch request errors
	ErrInvalidRequest ErrorCode = "B0101"
)

// Error represents a structured error with a code.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new Error. Position is -1 when not applicable.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Errorf is NewError with a formatted message and no position.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...), -1)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code, so a bare
// NewError(code, "", -1) works as a sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// IsCode reports whether err (or anything it wraps) is an *Error with code.
func IsCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}
