package health

import (
	"net/http"

	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/health"
)

// HealthController maneja los endpoints de liveness y readiness.
type HealthController struct {
	service svc.HealthService
}

// NewHealthController crea un nuevo controller de health.
func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Healthz maneja GET /healthz
//
// Liveness: responde 200 mientras el proceso atienda requests, sin tocar
// dependencias externas.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz maneja GET /readyz
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	response := c.service.Check(r.Context())

	status := http.StatusOK
	if response.Status == "unavailable" {
		status = http.StatusServiceUnavailable
	}
	httperrors.WriteJSON(w, status, response)
}
