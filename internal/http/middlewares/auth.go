package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	"github.com/dropDatabas3/gatekeep/internal/http/errors"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

// sessionToken extrae el token de sesión: primero la cookie, después
// Authorization: Bearer (para clientes no-browser).
func sessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" && strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return strings.TrimSpace(ah[len("Bearer "):])
	}
	return ""
}

// RequireSession valida el token de sesión y guarda las claims en el contexto.
// Si el token es inválido o no está presente, responde 401.
func RequireSession(issuer *jwtx.Issuer, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := sessionToken(r, cookieName)
			if raw == "" {
				errors.WriteError(w, errors.ErrUnauthorized)
				return
			}

			claims, err := issuer.ParseSession(raw)
			if err != nil {
				errors.WriteError(w, errors.ErrTokenInvalid.WithDetail(err.Error()))
				return
			}

			ctx := WithSession(r.Context(), claims)
			ctx = WithUserID(ctx, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession intenta validar la sesión pero NO falla si no está presente.
// Útil para endpoints con comportamiento distinto para usuarios autenticados.
func OptionalSession(issuer *jwtx.Issuer, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := sessionToken(r, cookieName)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := issuer.ParseSession(raw)
			if err != nil {
				// Token inválido pero opcional, continuar sin sesión
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithSession(r.Context(), claims)
			ctx = WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole exige que la sesión tenga al menos el rol dado.
// Debe usarse después de RequireSession.
func RequireRole(min repository.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r.Context())
			if !role.Valid() || !role.AtLeast(min) {
				errors.WriteError(w, errors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
