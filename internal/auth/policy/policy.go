// Package policy define la política de autenticación por usuario.
//
// Hoy el único Provider implementado retorna defaults permisivos (password
// habilitado, cualquier OAuth), pero la interfaz es el punto de extensión
// para una futura política persistida por usuario.
package policy

import (
	"context"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
)

// oauthKind discrimina las variantes de OAuthPolicy.
type oauthKind int

const (
	kindAny oauthKind = iota
	kindNone
	kindAllowOnly
)

// OAuthPolicy es una unión etiquetada: Any | None | AllowOnly(set).
// Se construye solo con Any(), None() o AllowOnly(); el zero value es Any.
// Reemplaza los string bags ad-hoc históricos ("MICROSOFT_ONLY", etc):
// una variante nueva obliga a tocar Allows, no aparece sola en runtime.
type OAuthPolicy struct {
	kind  oauthKind
	allow map[provider.ID]bool
}

// Any permite cualquier provider OAuth (sin restricción propia).
func Any() OAuthPolicy {
	return OAuthPolicy{kind: kindAny}
}

// None prohíbe todos los providers OAuth.
func None() OAuthPolicy {
	return OAuthPolicy{kind: kindNone}
}

// AllowOnly permite únicamente los providers listados.
func AllowOnly(ids ...provider.ID) OAuthPolicy {
	allow := make(map[provider.ID]bool, len(ids))
	for _, id := range ids {
		allow[id] = true
	}
	return OAuthPolicy{kind: kindAllowOnly, allow: allow}
}

// Allows retorna true si la política permite el provider dado.
// La política solo restringe: el flag global sigue siendo la cota superior
// (eso lo aplica el resolver, no esta función).
func (p OAuthPolicy) Allows(id provider.ID) bool {
	switch p.kind {
	case kindAny:
		return true
	case kindNone:
		return false
	case kindAllowOnly:
		return p.allow[id]
	default:
		return false
	}
}

// UserPolicy es el override por usuario.
// PasswordEnabled gobierna SOLO la credencial local; la política OAuth no
// toca el password y viceversa.
type UserPolicy struct {
	PasswordEnabled bool
	OAuth           OAuthPolicy
}

// Provider resuelve la política de un usuario.
type Provider interface {
	// PolicyFor retorna la política para un usuario. No debe fallar por
	// "usuario sin política": en ese caso retorna los defaults.
	PolicyFor(ctx context.Context, userID string) (UserPolicy, error)
}

// Static es un Provider que retorna siempre la misma política.
// El default de producción es Permissive() hasta que exista persistencia.
type Static struct {
	Policy UserPolicy
}

// Permissive retorna el Provider por defecto: password habilitado, OAuth Any.
func Permissive() *Static {
	return &Static{Policy: UserPolicy{PasswordEnabled: true, OAuth: Any()}}
}

func (s *Static) PolicyFor(ctx context.Context, userID string) (UserPolicy, error) {
	return s.Policy, nil
}
