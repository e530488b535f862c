package system

import "github.com/dropDatabas3/gatekeep/internal/bootstrap"

// Services agrupa todos los services del área system.
type Services struct {
	Install InstallService
}

// NewServices crea el agregador de services system.
func NewServices(b *bootstrap.Service) Services {
	return Services{
		Install: NewInstallService(InstallDeps{Bootstrap: b}),
	}
}
