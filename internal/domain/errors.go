package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNotReady          = errors.New("esquema de base de datos no disponible")
)

// RuleError es una violación de regla de negocio asociada a un campo del request.
// Kind es uno de los errores centinela de arriba; errors.Is funciona contra él.
type RuleError struct {
	Field   string
	Message string
	Kind    error
}

func (e *RuleError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *RuleError) Unwrap() error { return e.Kind }

// Invalid construye un RuleError de tipo ErrInvalidInput.
func Invalid(field, format string, args ...any) error {
	return &RuleError{Field: field, Message: fmt.Sprintf(format, args...), Kind: ErrInvalidInput}
}

// Insufficient construye un RuleError de tipo ErrInsufficientStock.
func Insufficient(field, format string, args ...any) error {
	return &RuleError{Field: field, Message: fmt.Sprintf(format, args...), Kind: ErrInsufficientStock}
}

// Conflict construye un RuleError de tipo ErrConflict (p. ej. orden ya finalizada).
func Conflict(field, format string, args ...any) error {
	return &RuleError{Field: field, Message: fmt.Sprintf(format, args...), Kind: ErrConflict}
}

// NotFound construye un RuleError de tipo ErrNotFound.
func NotFound(field, format string, args ...any) error {
	return &RuleError{Field: field, Message: fmt.Sprintf(format, args...), Kind: ErrNotFound}
}
