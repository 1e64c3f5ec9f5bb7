package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate entry")
	ErrUpstream           = errors.New("upstream failure")
)

var (
	ErrUserNotFound         = &NotFoundError{Message: "Usuario no encontrado"}
	ErrBeneficiariaNotFound = &NotFoundError{Message: "Beneficiaria no encontrada"}
	ErrProyectoNotFound     = &NotFoundError{Message: "Proyecto no encontrado"}
	ErrCapacitacionNotFound = &NotFoundError{Message: "Capacitación no encontrada"}
	ErrSectorNotFound       = &NotFoundError{Message: "Sector no encontrado"}
	ErrImageNotFound        = &NotFoundError{Message: "Imagen no disponible"}

	ErrUserExists = &DuplicateError{Code: "USUARIO_DUPLICADO", Field: "usuario", Message: "El usuario ya existe"}
)

// ValidationError is a malformed or missing input, reported before any side effect.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError names the missing resource in a client-facing message.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateError is a uniqueness violation. Value holds the conflicting value
// extracted from the store's error message, when available.
type DuplicateError struct {
	Code    string
	Field   string
	Value   string
	Key     string
	Message string
}

func (e *DuplicateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Value != "" {
		return fmt.Sprintf("duplicate entry %q", e.Value)
	}
	return ErrDuplicate.Error()
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

var (
	ErrTokenRequired = &AuthError{Message: "Token de acceso requerido"}
	ErrTokenInvalid  = &AuthError{Message: "Token no válido"}
	ErrUserInvalid   = &AuthError{Message: "Usuario no válido"}
)

// AuthError is an authentication failure with a client-facing message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string        { return e.Message }
func (e *AuthError) Is(target error) bool { return target == ErrUnauthenticated }
