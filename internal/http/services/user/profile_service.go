package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/user"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
	"github.com/dropDatabas3/gatekeep/internal/security/password"
)

// minPasswordLen es el largo mínimo para contraseñas nuevas.
const minPasswordLen = 8

// ProfileDeps contiene las dependencias para el profile service.
type ProfileDeps struct {
	Users repository.UserRepository
}

type profileService struct {
	deps ProfileDeps
}

// NewProfileService crea un nuevo servicio de perfil.
func NewProfileService(deps ProfileDeps) ProfileService {
	return &profileService{deps: deps}
}

func (s *profileService) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	u, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(u), nil
}

func (s *profileService) Update(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("user.profile"),
		logger.Op("Update"),
		logger.UserID(userID),
	)

	upd := repository.UpdateUserInput{
		Email:        in.Email,
		ProfileImage: in.ProfileImage,
	}

	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		if trimmed == "" {
			return nil, ErrInvalidUsername
		}
		upd.Username = &trimmed
	}

	if in.Theme != nil {
		t := repository.Theme(*in.Theme)
		if !t.Valid() {
			return nil, ErrInvalidTheme
		}
		upd.Theme = &t
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, ErrWeakPassword
		}
		hash, err := password.Hash(password.Default, *in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}

	u, err := s.deps.Users.Update(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	log.Info("profile updated")
	return profileOf(u), nil
}

func profileOf(u *repository.User) *dto.ProfileResponse {
	email := ""
	if u.Email != nil {
		email = *u.Email
	}
	return &dto.ProfileResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        email,
		Role:         string(u.Role),
		Theme:        string(u.Theme),
		ProfileImage: u.ProfileImage,
		HasPassword:  u.HasPassword(),
		CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
