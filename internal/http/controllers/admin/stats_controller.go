package admin

import (
	"net/http"

	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/admin"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// StatsController expone los contadores del panel administrativo.
type StatsController struct {
	service svc.StatsService
}

// NewStatsController crea un nuevo controller de estadísticas.
func NewStatsController(service svc.StatsService) *StatsController {
	return &StatsController{service: service}
}

// Stats maneja GET /v1/admin/stats
func (c *StatsController) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := c.service.Stats(ctx)
	if err != nil {
		logger.From(ctx).Error("admin stats failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, stats)
}
