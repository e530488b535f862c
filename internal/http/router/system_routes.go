package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/system"
	mw "github.com/dropDatabas3/gatekeep/internal/http/middlewares"
)

// SystemRouterDeps contiene las dependencias para las rutas de sistema.
type SystemRouterDeps struct {
	Controllers *ctrl.Controllers
}

// RegisterSystemRoutes registra las rutas de instalación.
//
// Son públicas: el primer usuario se crea antes de que exista cualquier
// sesión, y el alta se cierra sola cuando ya hay un admin.
func RegisterSystemRoutes(r chi.Router, deps SystemRouterDeps) {
	c := deps.Controllers
	if c == nil {
		return
	}

	// GET /v1/system/install-state
	r.Method(http.MethodGet, "/v1/system/install-state",
		mw.Chain(http.HandlerFunc(c.Install.InstallState), mw.WithNoStore()))

	// POST /v1/system/first-user
	r.Method(http.MethodPost, "/v1/system/first-user",
		mw.Chain(http.HandlerFunc(c.Install.CreateFirstUser), mw.WithNoStore()))
}
