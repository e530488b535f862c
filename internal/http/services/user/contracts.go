// Package user contiene los servicios del área self-service.
package user

import (
	"context"
	"errors"

	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/user"
)

// ProfileService define las operaciones sobre el perfil propio.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

// AccountsService define las operaciones sobre cuentas vinculadas propias.
type AccountsService interface {
	List(ctx context.Context, userID string) (*dto.LinkedAccountsResponse, error)
	Unlink(ctx context.Context, userID, accountID string) error
}

// SteamService expone perfil, juegos recientes y amigos de la cuenta Steam
// vinculada del usuario autenticado.
type SteamService interface {
	Summary(ctx context.Context, userID string) (*dto.SteamSummaryResponse, error)
	Friends(ctx context.Context, userID string, limit int, withProfiles bool) (*dto.SteamFriendsResponse, error)
}

// Errores de perfil
var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidUsername = errors.New("invalid username")
	ErrWeakPassword    = errors.New("password too weak")
)

// ErrSteamUnavailable indica que no hay API key de Steam configurada.
var ErrSteamUnavailable = errors.New("steam web api not configured")
