package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/social"
	mw "github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
	"github.com/dropDatabas3/gatekeep/internal/rate"
)

// SocialRouterDeps contiene las dependencias para las rutas de OAuth.
type SocialRouterDeps struct {
	Controllers *ctrl.Controllers
	Issuer      *jwtx.Issuer
	CookieName  string
	Limiter     rate.Limiter
}

// RegisterSocialRoutes registra las rutas del flujo social.
//
// El start lleva OptionalSession: sin sesión inicia un sign-in, con sesión
// y ?intent=link vincula la cuenta externa al usuario actual.
func RegisterSocialRoutes(r chi.Router, deps SocialRouterDeps) {
	c := deps.Controllers
	if c == nil {
		return
	}

	start := []mw.Middleware{
		mw.WithNoStore(),
		mw.OptionalSession(deps.Issuer, deps.CookieName),
	}
	if deps.Limiter != nil {
		start = append(start, mw.WithRateLimit(deps.Limiter, mw.IPOnlyRateKey))
	}

	// GET /v1/auth/social/{provider}/start
	r.Method(http.MethodGet, "/v1/auth/social/{provider}/start",
		mw.Chain(http.HandlerFunc(c.Start.Start), start...))

	// GET /v1/auth/social/{provider}/callback
	r.Method(http.MethodGet, "/v1/auth/social/{provider}/callback",
		mw.Chain(http.HandlerFunc(c.Callback.Callback), mw.WithNoStore()))
}
