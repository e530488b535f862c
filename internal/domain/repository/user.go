package repository

import (
	"context"
	"time"
)

// Role es el rol de un usuario. El orden importa: VIEWER < MODERATOR < ADMIN.
type Role string

const (
	RoleViewer    Role = "VIEWER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// rank asigna un valor ordinal a cada rol para comparaciones.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleModerator:
		return 1
	case RoleViewer:
		return 0
	default:
		return -1
	}
}

// AtLeast retorna true si el rol es igual o superior al requerido.
func (r Role) AtLeast(required Role) bool {
	return r.rank() >= required.rank()
}

// Valid retorna true si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	return r.rank() >= 0
}

// Theme es la preferencia de tema de UI del usuario.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid retorna true si el theme es uno de los conocidos.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// User representa un usuario del sistema.
// PasswordHash nil significa que el usuario no tiene credencial local:
// en ese caso DEBE tener al menos una cuenta OAuth vinculada, o queda
// bloqueado permanentemente (ver AccountRepository.Unlink).
type User struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash *string
	Role         Role
	Theme        Theme
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword retorna true si el usuario tiene credencial local.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// CreateUserInput contiene los datos para crear un usuario.
type CreateUserInput struct {
	Username     string
	Email        *string
	PasswordHash *string
	Role         Role
	Theme        Theme
	ProfileImage string
}

// UpdateUserInput contiene los campos actualizables de un usuario.
// Punteros nil significan "sin cambio".
type UpdateUserInput struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *Role
	Theme        *Theme
	ProfileImage *string
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// GetByID busca un usuario por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, userID string) (*User, error)

	// GetByUsername busca un usuario por username. Retorna ErrNotFound si no existe.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List lista todos los usuarios, más recientes primero.
	List(ctx context.Context) ([]User, error)

	// Create crea un nuevo usuario. Retorna ErrConflict si el username ya existe.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// Update actualiza campos de un usuario. Retorna ErrNotFound si no existe.
	Update(ctx context.Context, userID string, input UpdateUserInput) (*User, error)

	// Delete elimina un usuario (y sus cuentas vinculadas, por FK cascade).
	// Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, userID string) error

	// CountByRole cuenta usuarios con un rol dado.
	CountByRole(ctx context.Context, role Role) (int, error)

	// Count cuenta todos los usuarios.
	Count(ctx context.Context) (int, error)
}
