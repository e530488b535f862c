package system

import (
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/system"
)

// Controllers agrupa los controllers del área de sistema.
type Controllers struct {
	Install *InstallController
}

// NewControllers crea los controllers de sistema.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Install: NewInstallController(s.Install),
	}
}
