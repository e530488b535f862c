package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/auth"
	mw "github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
	"github.com/dropDatabas3/gatekeep/internal/rate"
)

// AuthRouterDeps contiene las dependencias para las rutas de auth.
type AuthRouterDeps struct {
	Controllers *ctrl.Controllers
	Issuer      *jwtx.Issuer
	CookieName  string

	LoginLimiter     rate.Limiter
	PreflightLimiter rate.Limiter
}

// RegisterAuthRoutes registra las rutas de autenticación con credenciales.
func RegisterAuthRoutes(r chi.Router, deps AuthRouterDeps) {
	c := deps.Controllers
	if c == nil {
		return
	}

	// POST /v1/auth/preflight
	r.Method(http.MethodPost, "/v1/auth/preflight", publicHandler(deps.PreflightLimiter, http.HandlerFunc(c.Preflight.Preflight)))

	// POST /v1/auth/login
	r.Method(http.MethodPost, "/v1/auth/login", publicHandler(deps.LoginLimiter, http.HandlerFunc(c.Login.Login)))

	// POST /v1/auth/logout
	r.Method(http.MethodPost, "/v1/auth/logout", publicHandler(nil, http.HandlerFunc(c.Logout.Logout)))

	// GET /v1/auth/me (requiere sesión)
	r.Method(http.MethodGet, "/v1/auth/me", sessionHandler(deps.Issuer, deps.CookieName, http.HandlerFunc(c.Me.Me)))
}

// publicHandler arma la cadena para endpoints públicos de auth.
// Estos endpoints reciben credenciales: siempre no-store, rate limit si hay.
func publicHandler(limiter rate.Limiter, handler http.Handler) http.Handler {
	chain := []mw.Middleware{
		mw.WithNoStore(),
	}
	if limiter != nil {
		chain = append(chain, mw.WithRateLimit(limiter, mw.IPPathRateKey))
	}
	return mw.Chain(handler, chain...)
}

// sessionHandler arma la cadena para endpoints que requieren sesión.
func sessionHandler(issuer *jwtx.Issuer, cookieName string, handler http.Handler) http.Handler {
	return mw.Chain(handler,
		mw.WithNoStore(),
		mw.RequireSession(issuer, cookieName),
	)
}
