package user

import (
	"errors"
	"net/http"
	"strconv"

	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/user"
	"github.com/dropDatabas3/gatekeep/internal/oauth/steam"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// SteamController expone los datos de Steam del usuario autenticado.
type SteamController struct {
	service svc.SteamService
}

// NewSteamController crea un nuevo controller de datos de Steam.
func NewSteamController(service svc.SteamService) *SteamController {
	return &SteamController{service: service}
}

// Summary maneja GET /v1/user/self/steam/summary
func (c *SteamController) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	resp, err := c.service.Summary(ctx, userID)
	if err != nil {
		c.writeError(w, r, userID, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, resp)
}

// Friends maneja GET /v1/user/self/steam/friends
func (c *SteamController) Friends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("limit"))
			return
		}
		limit = n
	}
	wp := r.URL.Query().Get("withProfiles")
	withProfiles := wp == "1" || wp == "true"

	resp, err := c.service.Friends(ctx, userID, limit, withProfiles)
	if err != nil {
		c.writeError(w, r, userID, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, resp)
}

func (c *SteamController) writeError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	switch {
	case errors.Is(err, steam.ErrUpstream):
		httperrors.WriteError(w, httperrors.ErrUpstreamProvider)
	case errors.Is(err, svc.ErrSteamUnavailable):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
	default:
		logger.From(r.Context()).Error("steam data lookup failed",
			logger.UserID(userID), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
