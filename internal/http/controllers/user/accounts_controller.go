package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/user"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// AccountsController maneja las cuentas vinculadas del usuario autenticado.
type AccountsController struct {
	service svc.AccountsService
}

// NewAccountsController crea un nuevo controller de cuentas vinculadas.
func NewAccountsController(service svc.AccountsService) *AccountsController {
	return &AccountsController{service: service}
}

// List maneja GET /v1/user/self/accounts
func (c *AccountsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	accounts, err := c.service.List(ctx, userID)
	if err != nil {
		logger.From(ctx).Error("linked accounts list failed", logger.UserID(userID), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, accounts)
}

// Unlink maneja DELETE /v1/user/self/accounts/{id}
func (c *AccountsController) Unlink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("id"))
		return
	}

	if err := c.service.Unlink(ctx, userID, accountID); err != nil {
		switch {
		case errors.Is(err, repository.ErrLastAuthMethod):
			httperrors.WriteError(w, httperrors.ErrLastAuthMethod)
		case errors.Is(err, repository.ErrNotFound):
			httperrors.WriteError(w, httperrors.ErrAccountNotFound)
		default:
			logger.From(ctx).Error("account unlink failed",
				logger.UserID(userID), logger.AccountID(accountID), logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
