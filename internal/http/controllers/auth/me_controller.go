package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/middlewares"
)

// MeController devuelve la identidad de la sesión actual.
type MeController struct{}

// NewMeController crea un nuevo controller de identidad.
func NewMeController() *MeController {
	return &MeController{}
}

// Me maneja GET /v1/auth/me
// Lee directo de las claims ya validadas por el middleware de sesión.
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	sess := middlewares.GetSession(r.Context())
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, dto.MeResponse{
		ID:           sess.UserID,
		Username:     sess.Username,
		Role:         sess.Role,
		Theme:        sess.Theme,
		ProfileImage: sess.ProfileImage,
	})
}
