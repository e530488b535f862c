package middlewares

import (
	"context"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	// ctxSessionKey guarda las claims de sesión parseadas
	ctxSessionKey ctxKey = "session"
	// ctxUserIDKey guarda el user ID extraído del token
	ctxUserIDKey ctxKey = "user_id"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// =================================================================================
// CONTEXT SETTERS (Internos, usados por middlewares)
// =================================================================================

// WithSession inyecta las claims de sesión en el contexto
func WithSession(ctx context.Context, claims *jwtx.SessionClaims) context.Context {
	return context.WithValue(ctx, ctxSessionKey, claims)
}

// WithUserID inyecta el user ID en el contexto
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, userID)
}

// setRequestID inyecta el request ID en el contexto (interno)
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// =================================================================================
// CONTEXT GETTERS (Públicos, usados por controllers/services)
// =================================================================================

// GetSession obtiene las claims de sesión del contexto.
// Retorna nil si no hay sesión (token no validado o middleware no aplicado).
func GetSession(ctx context.Context) *jwtx.SessionClaims {
	if v := ctx.Value(ctxSessionKey); v != nil {
		if c, ok := v.(*jwtx.SessionClaims); ok {
			return c
		}
	}
	return nil
}

// GetUserID obtiene el user ID del contexto.
// Retorna cadena vacía si no hay user ID.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(ctxUserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetRole obtiene el rol de la sesión del contexto.
// Retorna cadena vacía si no hay sesión.
func GetRole(ctx context.Context) repository.Role {
	if c := GetSession(ctx); c != nil {
		return repository.Role(c.Role)
	}
	return ""
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
