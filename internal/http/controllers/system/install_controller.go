package system

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dropDatabas3/gatekeep/internal/bootstrap"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/system"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/system"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

const maxInstallBodySize = 64 * 1024

// InstallController maneja el flujo de primera instalación.
type InstallController struct {
	service svc.InstallService
}

// NewInstallController crea un nuevo controller de instalación.
func NewInstallController(service svc.InstallService) *InstallController {
	return &InstallController{service: service}
}

// InstallState maneja GET /v1/system/install-state
//
// Endpoint público: la UI lo consulta antes de mostrar login o el wizard
// de primer usuario.
func (c *InstallController) InstallState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := c.service.InstallState(ctx)
	if err != nil {
		logger.From(ctx).Error("install state check failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	httperrors.WriteJSON(w, http.StatusOK, state)
}

// CreateFirstUser maneja POST /v1/system/first-user
func (c *InstallController) CreateFirstUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in dto.FirstUserRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxInstallBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	user, err := c.service.CreateFirstUser(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, bootstrap.ErrAlreadyInstalled):
			httperrors.WriteError(w, httperrors.ErrAlreadyInstalled)
		case errors.Is(err, bootstrap.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrMissingFields)
		case errors.Is(err, bootstrap.ErrWeakPassword):
			httperrors.WriteError(w, httperrors.ErrPasswordTooWeak)
		default:
			logger.From(ctx).Error("first user create failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	httperrors.WriteJSON(w, http.StatusCreated, user)
}
