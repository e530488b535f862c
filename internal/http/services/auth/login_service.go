package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
	"github.com/dropDatabas3/gatekeep/internal/security/password"
)

// LoginDeps contiene las dependencias para el login service.
type LoginDeps struct {
	Users    repository.UserRepository
	Resolver *visibility.Resolver
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea un nuevo servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Authorize(ctx context.Context, username, pass string) (*Identity, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Authorize"),
	)

	// Paso 0: Normalización y validación sin tocar la base.
	username = strings.TrimSpace(username)
	if username == "" || pass == "" {
		return nil, ErrMissingCredentials
	}

	// Paso 1: Buscar usuario.
	user, err := s.deps.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug("user not found")
			return nil, ErrUserNotFound
		}
		// Infraestructura caída: nunca degradar a "permitir".
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	log = log.With(logger.UserID(user.ID))

	// Paso 2: Re-resolver visibilidad. No se confía en el preflight previo
	// ni en nada que haya mandado el cliente.
	d, err := s.deps.Resolver.ForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("visibility resolution: %w", err)
	}
	if !d.Credentials {
		code, providers := visibility.Steering(d)
		log.Info("password sign-in refused by visibility", logger.Code(code))
		return nil, &SteeringError{Code: code, Providers: providers}
	}

	// Paso 3: Verificar contraseña local.
	if !user.HasPassword() {
		log.Debug("user has no local password")
		return nil, ErrNoLocalPassword
	}
	if !password.Verify(pass, *user.PasswordHash) {
		log.Debug("invalid password")
		return nil, ErrInvalidPassword
	}

	log.Info("password sign-in succeeded", logger.Username(user.Username))

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &Identity{
		ID:           user.ID,
		Username:     user.Username,
		Email:        email,
		Role:         string(user.Role),
		Theme:        string(user.Theme),
		ProfileImage: user.ProfileImage,
	}, nil
}
