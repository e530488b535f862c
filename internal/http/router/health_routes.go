package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/health"
)

// HealthRouterDeps contiene las dependencias para las rutas de health.
type HealthRouterDeps struct {
	Controllers    *ctrl.Controllers
	MetricsHandler http.Handler
}

// RegisterHealthRoutes registra liveness, readiness y métricas.
func RegisterHealthRoutes(r chi.Router, deps HealthRouterDeps) {
	if deps.Controllers != nil {
		// GET /healthz
		r.Method(http.MethodGet, "/healthz", http.HandlerFunc(deps.Controllers.Health.Healthz))

		// GET /readyz
		r.Method(http.MethodGet, "/readyz", http.HandlerFunc(deps.Controllers.Health.Readyz))
	}

	if deps.MetricsHandler != nil {
		// GET /metrics
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}
