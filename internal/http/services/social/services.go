package social

import (
	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/cache"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
)

// Services agrupa todos los services del dominio social.
type Services struct {
	Start    StartService
	Callback CallbackService
}

// Deps contiene las dependencias compartidas del dominio social.
type Deps struct {
	Providers *oauth.Registry
	Issuer    *jwtx.Issuer
	Cache     cache.Client
	Users     repository.UserRepository
	Accounts  repository.AccountRepository
	Resolver  *visibility.Resolver
}

// NewServices crea el agregador de services social.
func NewServices(d Deps) Services {
	signer := &StateSigner{Issuer: d.Issuer}
	return Services{
		Start: NewStartService(StartDeps{
			Providers: d.Providers,
			Signer:    signer,
			Cache:     d.Cache,
		}),
		Callback: NewCallbackService(CallbackDeps{
			Providers: d.Providers,
			Signer:    signer,
			Cache:     d.Cache,
			Users:     d.Users,
			Accounts:  d.Accounts,
			Resolver:  d.Resolver,
		}),
	}
}
