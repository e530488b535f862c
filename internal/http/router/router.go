// Package router contiene el agregador de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	adminctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/admin"
	authctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/health"
	socialctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/social"
	systemctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/system"
	userctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/user"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/metrics"
	mw "github.com/dropDatabas3/gatekeep/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
	"github.com/dropDatabas3/gatekeep/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	// Controllers
	Auth   *authctrl.Controllers
	Social *socialctrl.Controllers
	User   *userctrl.Controllers
	Admin  *adminctrl.Controllers
	System *systemctrl.Controllers
	Health *healthctrl.Controllers

	// Sesión
	Issuer     *jwtx.Issuer
	CookieName string

	// CORS
	AllowedOrigins []string

	// Rate limiting (opcionales; nil desactiva)
	LoginLimiter     rate.Limiter
	PreflightLimiter rate.Limiter
	SocialLimiter    rate.Limiter

	// Handler de /metrics; nil desactiva el endpoint
	MetricsHandler http.Handler
}

// New construye el router HTTP completo.
//
// Middlewares globales primero (request ID, recover, headers, CORS, métricas,
// logging); cada área registra después sus propias cadenas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithRecover())
	r.Use(mw.WithSecurityHeaders())
	if len(deps.AllowedOrigins) > 0 {
		r.Use(mw.WithCORS(deps.AllowedOrigins))
	}
	r.Use(metrics.WithHTTPMetrics)
	r.Use(mw.WithLogging())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// ===========================================================================
	// Health + métricas
	// ===========================================================================
	RegisterHealthRoutes(r, HealthRouterDeps{
		Controllers:    deps.Health,
		MetricsHandler: deps.MetricsHandler,
	})

	// ===========================================================================
	// Sistema (instalación)
	// ===========================================================================
	RegisterSystemRoutes(r, SystemRouterDeps{
		Controllers: deps.System,
	})

	// ===========================================================================
	// Auth con credenciales
	// ===========================================================================
	RegisterAuthRoutes(r, AuthRouterDeps{
		Controllers:      deps.Auth,
		Issuer:           deps.Issuer,
		CookieName:       deps.CookieName,
		LoginLimiter:     deps.LoginLimiter,
		PreflightLimiter: deps.PreflightLimiter,
	})

	// ===========================================================================
	// Auth social (OAuth)
	// ===========================================================================
	RegisterSocialRoutes(r, SocialRouterDeps{
		Controllers: deps.Social,
		Issuer:      deps.Issuer,
		CookieName:  deps.CookieName,
		Limiter:     deps.SocialLimiter,
	})

	// ===========================================================================
	// Self-service
	// ===========================================================================
	RegisterUserRoutes(r, UserRouterDeps{
		Controllers: deps.User,
		Issuer:      deps.Issuer,
		CookieName:  deps.CookieName,
	})

	// ===========================================================================
	// Administración
	// ===========================================================================
	RegisterAdminRoutes(r, AdminRouterDeps{
		Controllers: deps.Admin,
		Issuer:      deps.Issuer,
		CookieName:  deps.CookieName,
	})

	return r
}
