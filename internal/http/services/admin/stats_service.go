package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/admin"
)

// StatsDeps contiene las dependencias para el stats service.
type StatsDeps struct {
	Users repository.UserRepository
}

type statsService struct {
	deps StatsDeps
}

// NewStatsService crea un nuevo servicio de estadísticas.
func NewStatsService(deps StatsDeps) StatsService {
	return &statsService{deps: deps}
}

func (s *statsService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var users, admins int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.deps.Users.Count(gctx)
		users = int64(n)
		return err
	})
	g.Go(func() error {
		n, err := s.deps.Users.CountByRole(gctx, repository.RoleAdmin)
		admins = int64(n)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.StatsResponse{UserCount: users, AdminCount: admins}, nil
}
