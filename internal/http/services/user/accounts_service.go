package user

import (
	"context"
	"time"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/user"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// AccountsDeps contiene las dependencias para el accounts service.
type AccountsDeps struct {
	Accounts repository.AccountRepository
}

type accountsService struct {
	deps AccountsDeps
}

// NewAccountsService crea un nuevo servicio de cuentas vinculadas.
func NewAccountsService(deps AccountsDeps) AccountsService {
	return &accountsService{deps: deps}
}

func (s *accountsService) List(ctx context.Context, userID string) (*dto.LinkedAccountsResponse, error) {
	accs, err := s.deps.Accounts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LinkedAccountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, dto.LinkedAccountResponse{
			ID:       a.ID,
			Provider: string(a.Provider),
			Label:    a.Label,
			Picture:  a.Picture,
			LinkedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &dto.LinkedAccountsResponse{Accounts: out}, nil
}

// Unlink delega en el repositorio, que corre la precondición de último
// método de acceso en la misma transacción que el delete.
func (s *accountsService) Unlink(ctx context.Context, userID, accountID string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("user.accounts"),
		logger.Op("Unlink"),
		logger.UserID(userID),
		logger.AccountID(accountID),
	)

	if err := s.deps.Accounts.Unlink(ctx, userID, accountID); err != nil {
		return err
	}
	log.Info("account unlinked")
	return nil
}
