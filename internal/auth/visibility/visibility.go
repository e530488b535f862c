// Package visibility decide qué métodos de sign-in están permitidos para un
// usuario concreto, combinando tres ejes independientes:
//
//   - flags globales del deployment (provider.Registry),
//   - cuentas OAuth vinculadas (repository.AccountRepository),
//   - política por usuario (policy.Provider).
//
// La decisión se recalcula fresca en cada preflight y en cada intento de
// login: nunca se cachea, porque un link/unlink debe reflejarse al instante.
package visibility

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/gatekeep/internal/auth/policy"
	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
)

// Decision es el resultado computado para un usuario en un instante.
// Valor efímero: no se persiste ni se cachea.
type Decision struct {
	Credentials bool
	Microsoft   bool
	Google      bool
	Steam       bool

	// Linked es el mapa crudo de providers vinculados, que preflight y UI
	// necesitan para redactar la guía ("entrá con Microsoft").
	Linked map[provider.ID]bool
}

// OAuthVisible retorna el flag computado para un provider OAuth.
func (d Decision) OAuthVisible(id provider.ID) bool {
	switch id {
	case provider.Microsoft:
		return d.Microsoft
	case provider.Google:
		return d.Google
	case provider.Steam:
		return d.Steam
	default:
		return false
	}
}

// VisibleOAuth retorna los providers OAuth visibles, en orden canónico.
func (d Decision) VisibleOAuth() []provider.ID {
	out := []provider.ID{}
	for _, id := range provider.OAuthOrder {
		if d.OAuthVisible(id) {
			out = append(out, id)
		}
	}
	return out
}

// AnyLinked retorna true si el usuario tiene algún provider OAuth vinculado.
func (d Decision) AnyLinked() bool {
	for _, id := range provider.OAuthOrder {
		if d.Linked[id] {
			return true
		}
	}
	return false
}

// Resolver computa la Decision para un usuario.
type Resolver struct {
	Registry *provider.Registry
	Accounts repository.AccountRepository
	Policy   policy.Provider
}

// NewResolver crea un resolver con sus tres fuentes.
func NewResolver(reg *provider.Registry, accounts repository.AccountRepository, pol policy.Provider) *Resolver {
	return &Resolver{Registry: reg, Accounts: accounts, Policy: pol}
}

// ForUser resuelve la visibilidad para un usuario.
//
// Determinista: mismas entradas, misma salida. Las dos lecturas con I/O
// (cuentas vinculadas y política) se lanzan en paralelo; no hay dependencia
// de orden entre ellas. Un error de cualquiera propaga como error (el caller
// decide fail-open o fail-closed según su frontera).
func (r *Resolver) ForUser(ctx context.Context, userID string) (Decision, error) {
	global := r.Registry.Global()

	var (
		linked map[provider.ID]bool
		pol    policy.UserPolicy
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		linked, err = r.Accounts.LinkedProviders(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		pol, err = r.Policy.PolicyFor(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Decision{}, err
	}

	d := Decision{Linked: linked}

	// Password: flag global AND política del usuario.
	d.Credentials = global.Credentials && pol.PasswordEnabled

	// Regla transversal: con el flag activo, CUALQUIER provider vinculado
	// apaga el password, sin importar cuál sea.
	if global.DisablePasswordWhenLinked && anyLinked(linked) {
		d.Credentials = false
	}

	// OAuth por provider: global es cota superior, la política solo acota.
	d.Microsoft = global.Microsoft && pol.OAuth.Allows(provider.Microsoft)
	d.Google = global.Google && pol.OAuth.Allows(provider.Google)
	d.Steam = global.Steam && pol.OAuth.Allows(provider.Steam)

	return d, nil
}

func anyLinked(linked map[provider.ID]bool) bool {
	for _, id := range provider.OAuthOrder {
		if linked[id] {
			return true
		}
	}
	return false
}
