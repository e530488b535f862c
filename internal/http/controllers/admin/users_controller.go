package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/admin"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

const maxAdminBodySize = 64 * 1024

// UsersController maneja el CRUD administrativo de usuarios.
type UsersController struct {
	service svc.UsersService
}

// NewUsersController crea un nuevo controller de usuarios.
func NewUsersController(service svc.UsersService) *UsersController {
	return &UsersController{service: service}
}

// List maneja GET /v1/admin/users
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := c.service.List(ctx)
	if err != nil {
		logger.From(ctx).Error("admin user list failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, users)
}

// Get maneja GET /v1/admin/users/{id}
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "id")
	user, err := c.service.Get(ctx, userID)
	if err != nil {
		c.writeUserError(w, r, userID, "admin user get failed", err)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, user)
}

// Create maneja POST /v1/admin/users
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in dto.CreateUserRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxAdminBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	user, err := c.service.Create(ctx, in)
	if err != nil {
		c.writeUserError(w, r, in.Username, "admin user create failed", err)
		return
	}

	httperrors.WriteJSON(w, http.StatusCreated, user)
}

// Update maneja PATCH /v1/admin/users/{id}
func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "id")

	var in dto.UpdateUserRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxAdminBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	user, err := c.service.Update(ctx, userID, in)
	if err != nil {
		c.writeUserError(w, r, userID, "admin user update failed", err)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, user)
}

// Delete maneja DELETE /v1/admin/users/{id}
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "id")
	if err := c.service.Delete(ctx, userID); err != nil {
		c.writeUserError(w, r, userID, "admin user delete failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccounts maneja GET /v1/admin/users/{id}/accounts
func (c *UsersController) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "id")
	accounts, err := c.service.ListAccounts(ctx, userID)
	if err != nil {
		c.writeUserError(w, r, userID, "admin account list failed", err)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, accounts)
}

// UnlinkAccount maneja DELETE /v1/admin/users/{id}/accounts/{accountID}
func (c *UsersController) UnlinkAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "id")
	accountID := chi.URLParam(r, "accountID")

	if err := c.service.UnlinkAccount(ctx, userID, accountID); err != nil {
		switch {
		case errors.Is(err, repository.ErrLastAuthMethod):
			httperrors.WriteError(w, httperrors.ErrLastAuthMethod)
		case errors.Is(err, repository.ErrNotFound):
			httperrors.WriteError(w, httperrors.ErrAccountNotFound)
		default:
			logger.From(ctx).Error("admin account unlink failed",
				logger.UserID(userID), logger.AccountID(accountID), logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *UsersController) writeUserError(w http.ResponseWriter, r *http.Request, subject, msg string, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingUsername):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("username"))
	case errors.Is(err, svc.ErrInvalidRole):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("role"))
	case errors.Is(err, svc.ErrInvalidTheme):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("theme"))
	case errors.Is(err, svc.ErrWeakPassword):
		httperrors.WriteError(w, httperrors.ErrPasswordTooWeak)
	case errors.Is(err, svc.ErrLastAdmin):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("last admin"))
	case errors.Is(err, repository.ErrConflict):
		httperrors.WriteError(w, httperrors.ErrUsernameTaken)
	case errors.Is(err, repository.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	default:
		logger.From(r.Context()).Error(msg, logger.String("subject", subject), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
