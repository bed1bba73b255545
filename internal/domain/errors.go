package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrValidation: la orden no cumple las reglas del validador (ver manufacturing.Validate).
	ErrValidation = errors.New("la orden tiene errores de validación")
	// ErrIllegalTransition: no existe transición desde el estado actual (CLOSED es terminal).
	ErrIllegalTransition = errors.New("transición de estado no permitida")
)
