package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrPedidoNotFound     = fmt.Errorf("pedido no encontrado: %w", ErrNotFound)
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPlatoInactive      = errors.New("plato inactivo")
	ErrUserInactive       = errors.New("usuario inactivo")
	ErrVersionMismatch    = fmt.Errorf("el pedido fue modificado por otra petición: %w", ErrConflict)
)

// PlatoNotFoundError indica que un plato referenciado no existe.
type PlatoNotFoundError struct {
	PlatoID int64
}

func (e *PlatoNotFoundError) Error() string {
	return fmt.Sprintf("plato con ID %d no encontrado", e.PlatoID)
}

func (e *PlatoNotFoundError) Is(target error) bool { return target == ErrNotFound }

// PlatoInactiveError indica que un plato referenciado existe pero no está activo.
type PlatoInactiveError struct {
	PlatoID int64
	Nombre  string
}

func (e *PlatoInactiveError) Error() string {
	return fmt.Sprintf("el plato '%s' (ID %d) no está activo", e.Nombre, e.PlatoID)
}

func (e *PlatoInactiveError) Is(target error) bool { return target == ErrPlatoInactive }

// ForbiddenError fallo del control de acceso; lista los roles permitidos para la operación.
type ForbiddenError struct {
	Operation string
	Role      string
	Allowed   []string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("el rol '%s' no puede realizar '%s'; roles permitidos: %s",
		e.Role, e.Operation, strings.Join(e.Allowed, ", "))
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// ValidationError entrada inválida con el detalle del campo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid atajo para construir un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
