package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/user"
	mw "github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

// UserRouterDeps contiene las dependencias para las rutas self-service.
type UserRouterDeps struct {
	Controllers *ctrl.Controllers
	Issuer      *jwtx.Issuer
	CookieName  string
}

// RegisterUserRoutes registra las rutas del área self-service.
func RegisterUserRoutes(r chi.Router, deps UserRouterDeps) {
	c := deps.Controllers
	if c == nil {
		return
	}

	authed := func(h http.HandlerFunc) http.Handler {
		return mw.Chain(h,
			mw.WithNoStore(),
			mw.RequireSession(deps.Issuer, deps.CookieName),
		)
	}

	// GET /v1/user/self
	r.Method(http.MethodGet, "/v1/user/self", authed(c.Profile.Get))

	// PATCH /v1/user/self
	r.Method(http.MethodPatch, "/v1/user/self", authed(c.Profile.Update))

	// GET /v1/user/self/accounts
	r.Method(http.MethodGet, "/v1/user/self/accounts", authed(c.Accounts.List))

	// DELETE /v1/user/self/accounts/{id}
	r.Method(http.MethodDelete, "/v1/user/self/accounts/{id}", authed(c.Accounts.Unlink))

	// GET /v1/user/self/steam/summary
	r.Method(http.MethodGet, "/v1/user/self/steam/summary", authed(c.Steam.Summary))

	// GET /v1/user/self/steam/friends
	r.Method(http.MethodGet, "/v1/user/self/steam/friends", authed(c.Steam.Friends))
}
