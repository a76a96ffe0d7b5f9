package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Internal wraps a downstream failure. The underlying message is what callers get to see.
func Internal(err error) *Error {
	if err == nil {
		return nil
	}
	return WrapError(ErrCodeInternal, err.Error(), err)
}

// Common domain errors.
var (
	ErrInvalidCredentials = NewError(ErrCodeInvalid, "Credenciales inválidas")
	ErrInvalidLogin       = NewError(ErrCodeInvalid, "Datos de acceso inválidos")
	ErrInvalidCall        = NewError(ErrCodeInvalid, "Se requiere spName (texto) y params (arreglo)")
	ErrUnknownCallKind    = NewError(ErrCodeInvalid, "No se reconoce si es FUNCTION o PROCEDURE")
	ErrUserNotFound       = NewError(ErrCodeNotFound, "usuario no encontrado")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrForbidden          = NewError(ErrCodeForbidden, "forbidden")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// PublicMessage returns the text exposed to API clients for err.
func PublicMessage(err error) string {
	var dErr *Error
	if errors.As(err, &dErr) {
		if dErr.Code == ErrCodeInternal && dErr.Err != nil {
			return dErr.Err.Error()
		}
		return dErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
