// Package oauth define la abstracción de providers OAuth/OpenID externos.
//
// Cada provider (Microsoft, Google, Steam) implementa Provider en su propio
// sub-package; el Registry expone los que quedaron habilitados por config.
// El handshake con el issuer vive acá; las decisiones de visibilidad y el
// vínculo con usuarios locales viven en las capas de arriba.
package oauth

import (
	"context"
	"net/url"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
)

// Profile es el perfil normalizado que devuelve cualquier provider tras un
// callback exitoso.
type Profile struct {
	// AccountID es el identificador del usuario en el provider (sub / steamid64).
	AccountID string

	Email         string
	EmailVerified bool
	Name          string
	Picture       string

	// RawIDToken es el token de identidad crudo (si el provider emite uno),
	// persistido en la cuenta para re-derivar label/avatar más tarde.
	RawIDToken string
}

// Label deriva la etiqueta UI-friendly del perfil: email primero, después
// nombre, y como último recurso el account ID del provider.
func (p *Profile) Label() string {
	if p.Email != "" {
		return p.Email
	}
	if p.Name != "" {
		return p.Name
	}
	return p.AccountID
}

// Provider es un cliente del flujo de autenticación de un issuer externo.
type Provider interface {
	// ID retorna el identificador canónico del provider.
	ID() provider.ID

	// AuthorizeURL construye la URL de arranque del flujo. state viaja al
	// provider y vuelve intacto en el callback; nonce liga el ID token a
	// este intento.
	AuthorizeURL(ctx context.Context, state, nonce string) (string, error)

	// Complete procesa los query params del callback, completa el
	// intercambio con el issuer y retorna el perfil verificado.
	Complete(ctx context.Context, query url.Values, expectedNonce string) (*Profile, error)
}

// Registry mantiene los providers habilitados por config.
// Se arma una vez al arrancar; inmutable después.
type Registry struct {
	providers map[provider.ID]Provider
}

// NewRegistry crea el registry con los providers dados.
func NewRegistry(ps ...Provider) *Registry {
	m := make(map[provider.ID]Provider, len(ps))
	for _, p := range ps {
		m[p.ID()] = p
	}
	return &Registry{providers: m}
}

// Get retorna el provider para un ID, si está habilitado.
func (r *Registry) Get(id provider.ID) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// Available retorna los IDs habilitados, en orden canónico.
func (r *Registry) Available() []provider.ID {
	out := []provider.ID{}
	for _, id := range provider.OAuthOrder {
		if _, ok := r.providers[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
