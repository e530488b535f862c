package auth

import (
	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
)

// Services agrupa todos los services del dominio auth.
type Services struct {
	Preflight PreflightService
	Login     LoginService
}

// Deps contiene las dependencias compartidas del dominio auth.
type Deps struct {
	Users    repository.UserRepository
	Resolver *visibility.Resolver
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{
		Preflight: NewPreflightService(PreflightDeps{Users: d.Users, Resolver: d.Resolver}),
		Login:     NewLoginService(LoginDeps{Users: d.Users, Resolver: d.Resolver}),
	}
}
