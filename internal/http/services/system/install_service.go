// Package system contiene el servicio de estado de instalación.
package system

import (
	"context"

	"github.com/dropDatabas3/gatekeep/internal/bootstrap"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/system"
)

// InstallService expone el estado de instalación y el alta del primer usuario.
type InstallService interface {
	InstallState(ctx context.Context) (*dto.InstallStateResponse, error)
	CreateFirstUser(ctx context.Context, in dto.FirstUserRequest) (*dto.FirstUserResponse, error)
}

// InstallDeps contiene las dependencias del install service.
type InstallDeps struct {
	Bootstrap *bootstrap.Service
}

type installService struct {
	deps InstallDeps
}

// NewInstallService crea el servicio de instalación.
func NewInstallService(deps InstallDeps) InstallService {
	return &installService{deps: deps}
}

func (s *installService) InstallState(ctx context.Context) (*dto.InstallStateResponse, error) {
	needs, err := s.deps.Bootstrap.NeedsFirstUser(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InstallStateResponse{NeedsFirstUser: needs}, nil
}

func (s *installService) CreateFirstUser(ctx context.Context, in dto.FirstUserRequest) (*dto.FirstUserResponse, error) {
	u, err := s.deps.Bootstrap.CreateFirstUser(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return &dto.FirstUserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	}, nil
}
