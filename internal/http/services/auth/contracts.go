// Package auth contiene contracts para servicios de autenticación.
package auth

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/auth"
)

// Identity es el resultado de una autorización exitosa.
// Nunca incluye el hash de contraseña.
type Identity struct {
	ID           string
	Username     string
	Email        string
	Role         string
	Theme        string
	ProfileImage string
}

// PreflightService resuelve el hint de steering para el formulario de login.
type PreflightService interface {
	// Preflight nunca falla hacia el cliente: ante cualquier error interno
	// devuelve code=null y el formulario muestra el campo contraseña.
	Preflight(ctx context.Context, username string) *dto.PreflightResponse
}

// LoginService define la autorización por contraseña.
type LoginService interface {
	// Authorize valida username/password contra la visibilidad re-resuelta
	// del usuario. Errores de infraestructura son fallas duras (fail-closed).
	Authorize(ctx context.Context, username, password string) (*Identity, error)
}

// Errores de autorización
var (
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrNoLocalPassword    = fmt.Errorf("no local password")
	ErrInvalidPassword    = fmt.Errorf("invalid password")
)

// SteeringError indica que el login por contraseña no está visible para el
// usuario y la UI debe redirigir a OAuth. El código viaja tal cual al cliente.
type SteeringError struct {
	Code      string
	Providers []provider.ID
}

func (e *SteeringError) Error() string {
	return fmt.Sprintf("password sign-in not visible: %s", e.Code)
}
