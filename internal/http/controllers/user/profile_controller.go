package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/user"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/user"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

const maxProfileBodySize = 64 * 1024

// ProfileController maneja el perfil del usuario autenticado.
type ProfileController struct {
	service svc.ProfileService
}

// NewProfileController crea un nuevo controller de perfil.
func NewProfileController(service svc.ProfileService) *ProfileController {
	return &ProfileController{service: service}
}

// Get maneja GET /v1/user/self
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	profile, err := c.service.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httperrors.WriteError(w, httperrors.ErrUserNotFound)
			return
		}
		logger.From(ctx).Error("profile get failed", logger.UserID(userID), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, profile)
}

// Update maneja PATCH /v1/user/self
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	var in dto.UpdateProfileRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxProfileBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	profile, err := c.service.Update(ctx, userID, in)
	if err != nil {
		c.writeUpdateError(w, r, userID, err)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, profile)
}

func (c *ProfileController) writeUpdateError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	switch {
	case errors.Is(err, svc.ErrInvalidTheme):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("theme"))
	case errors.Is(err, svc.ErrInvalidUsername):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("username"))
	case errors.Is(err, svc.ErrWeakPassword):
		httperrors.WriteError(w, httperrors.ErrPasswordTooWeak)
	case errors.Is(err, repository.ErrConflict):
		httperrors.WriteError(w, httperrors.ErrUsernameTaken)
	case errors.Is(err, repository.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	default:
		logger.From(r.Context()).Error("profile update failed", logger.UserID(userID), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
