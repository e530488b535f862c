package repository

import "errors"

// Errores comunes de los repositorios.
var (
	// ErrNotFound indica que el registro no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica violación de unicidad (username, provider account, etc).
	ErrConflict = errors.New("conflict")

	// ErrLastAuthMethod indica que la operación dejaría al usuario sin ningún
	// método de autenticación (sin password y sin cuentas vinculadas).
	ErrLastAuthMethod = errors.New("last auth method")
)
