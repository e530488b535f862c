package social

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/social"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// StartController maneja el arranque del flujo social.
type StartController struct {
	service svc.StartService
}

// NewStartController crea un nuevo controller de start.
func NewStartController(service svc.StartService) *StartController {
	return &StartController{service: service}
}

// Start maneja GET /v1/auth/social/{provider}/start
//
// Con sesión activa y ?intent=link el flujo corre en modo vinculación y la
// cuenta externa se adjunta al usuario actual en el callback.
func (c *StartController) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("StartController.Start"))

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	providerName := chi.URLParam(r, "provider")
	if providerName == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("missing provider"))
		return
	}

	linkUserID := ""
	if r.URL.Query().Get("intent") == "link" {
		linkUserID = middlewares.GetUserID(ctx)
		if linkUserID == "" {
			httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("link requires an active session"))
			return
		}
	}

	u, err := c.service.Start(ctx, providerName, linkUserID)
	if err != nil {
		if errors.Is(err, svc.ErrUnknownProvider) {
			httperrors.WriteError(w, httperrors.ErrUnknownProvider)
			return
		}
		log.Error("social start failed", logger.Provider(providerName), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	http.Redirect(w, r, u, http.StatusFound)
}
