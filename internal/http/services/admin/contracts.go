// Package admin contiene los servicios del área administrativa.
package admin

import (
	"context"
	"errors"

	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/admin"
	userdto "github.com/dropDatabas3/gatekeep/internal/http/dto/user"
)

// UsersService define el CRUD administrativo de usuarios.
type UsersService interface {
	List(ctx context.Context) (*dto.ListUsersResponse, error)
	Get(ctx context.Context, userID string) (*dto.UserResponse, error)
	Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, userID string) error

	// ListAccounts y UnlinkAccount son los espejos admin del área self;
	// aplican la misma precondición de último método.
	ListAccounts(ctx context.Context, userID string) (*userdto.LinkedAccountsResponse, error)
	UnlinkAccount(ctx context.Context, userID, accountID string) error
}

// StatsService expone los contadores del panel.
type StatsService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

// Errores administrativos
var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrMissingUsername = errors.New("missing username")
	ErrWeakPassword    = errors.New("password too weak")
	ErrLastAdmin       = errors.New("cannot demote or delete the last admin")
)
