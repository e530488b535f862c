package health

import (
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/health"
)

// Controllers agrupa los controllers de health.
type Controllers struct {
	Health *HealthController
}

// NewControllers crea los controllers de health.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Health: NewHealthController(s.Health),
	}
}
