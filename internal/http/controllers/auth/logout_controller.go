package auth

import (
	"net/http"

	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
)

// LogoutController maneja el cierre de sesión.
type LogoutController struct {
	cookie SessionCookie
}

// NewLogoutController crea un nuevo controller de logout.
func NewLogoutController(cookie SessionCookie) *LogoutController {
	return &LogoutController{cookie: cookie}
}

// Logout maneja POST /v1/auth/logout
// Las sesiones son JWT sin estado: cerrar sesión es borrar la cookie.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	ClearSessionCookie(w, c.cookie)
	w.WriteHeader(http.StatusNoContent)
}
