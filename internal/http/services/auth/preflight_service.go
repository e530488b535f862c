package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/auth"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// PreflightDeps contiene las dependencias para el preflight service.
type PreflightDeps struct {
	Users    repository.UserRepository
	Resolver *visibility.Resolver
}

type preflightService struct {
	deps PreflightDeps
}

// NewPreflightService crea un nuevo servicio de preflight.
func NewPreflightService(deps PreflightDeps) PreflightService {
	return &preflightService{deps: deps}
}

// nullResponse es el hint neutro: mostrar el campo contraseña.
// También es la respuesta para usuarios inexistentes (anti-enumeración) y
// para cualquier error interno (fail-open).
func nullResponse() *dto.PreflightResponse {
	return &dto.PreflightResponse{Code: nil}
}

func (s *preflightService) Preflight(ctx context.Context, username string) *dto.PreflightResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.preflight"),
		logger.Op("Preflight"),
	)

	username = strings.TrimSpace(username)
	if username == "" {
		return nullResponse()
	}

	user, err := s.deps.Users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			// Fail-open: el hint es cosmético, el login real decide.
			log.Warn("user lookup failed, degrading to null hint", logger.Err(err))
		}
		return nullResponse()
	}

	d, err := s.deps.Resolver.ForUser(ctx, user.ID)
	if err != nil {
		log.Warn("visibility resolution failed, degrading to null hint",
			logger.UserID(user.ID), logger.Err(err))
		return nullResponse()
	}

	if d.Credentials {
		return nullResponse()
	}

	code, providers := visibility.Steering(d)
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = string(p)
	}
	return &dto.PreflightResponse{Code: &code, Providers: names}
}
