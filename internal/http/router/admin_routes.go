package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	ctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/admin"
	mw "github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

// AdminRouterDeps contiene las dependencias para las rutas administrativas.
type AdminRouterDeps struct {
	Controllers *ctrl.Controllers
	Issuer      *jwtx.Issuer
	CookieName  string
}

// RegisterAdminRoutes registra las rutas del panel administrativo.
// Todas requieren sesión con rol admin.
func RegisterAdminRoutes(r chi.Router, deps AdminRouterDeps) {
	c := deps.Controllers
	if c == nil {
		return
	}

	admin := func(h http.HandlerFunc) http.Handler {
		return mw.Chain(h,
			mw.WithNoStore(),
			mw.RequireSession(deps.Issuer, deps.CookieName),
			mw.RequireRole(repository.RoleAdmin),
		)
	}

	// GET /v1/admin/stats
	r.Method(http.MethodGet, "/v1/admin/stats", admin(c.Stats.Stats))

	// GET /v1/admin/users
	r.Method(http.MethodGet, "/v1/admin/users", admin(c.Users.List))

	// POST /v1/admin/users
	r.Method(http.MethodPost, "/v1/admin/users", admin(c.Users.Create))

	// GET /v1/admin/users/{id}
	r.Method(http.MethodGet, "/v1/admin/users/{id}", admin(c.Users.Get))

	// PATCH /v1/admin/users/{id}
	r.Method(http.MethodPatch, "/v1/admin/users/{id}", admin(c.Users.Update))

	// DELETE /v1/admin/users/{id}
	r.Method(http.MethodDelete, "/v1/admin/users/{id}", admin(c.Users.Delete))

	// GET /v1/admin/users/{id}/accounts
	r.Method(http.MethodGet, "/v1/admin/users/{id}/accounts", admin(c.Users.ListAccounts))

	// DELETE /v1/admin/users/{id}/accounts/{accountID}
	r.Method(http.MethodDelete, "/v1/admin/users/{id}/accounts/{accountID}", admin(c.Users.UnlinkAccount))
}
