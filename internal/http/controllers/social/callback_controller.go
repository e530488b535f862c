package social

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/auth"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/metrics"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/social"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// CallbackController maneja el retorno del provider externo.
type CallbackController struct {
	service    svc.CallbackService
	issuer     *jwtx.Issuer
	cookie     authctrl.SessionCookie
	successURL string
}

// NewCallbackController crea un nuevo controller de callback.
func NewCallbackController(service svc.CallbackService, issuer *jwtx.Issuer, cookie authctrl.SessionCookie, successURL string) *CallbackController {
	if successURL == "" {
		successURL = "/"
	}
	return &CallbackController{service: service, issuer: issuer, cookie: cookie, successURL: successURL}
}

// Callback maneja GET /v1/auth/social/{provider}/callback
//
// En éxito emite la cookie de sesión y redirige a la app; en error redirige
// con ?error=<code> para que la UI lo muestre.
func (c *CallbackController) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CallbackController.Callback"))

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	providerName := chi.URLParam(r, "provider")
	if providerName == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("missing provider"))
		return
	}

	result, err := c.service.Callback(ctx, providerName, r.URL.Query())
	if err != nil {
		log.Warn("social callback failed", logger.Provider(providerName), logger.Err(err))
		metrics.RecordSocialCallback(providerName, "error")
		c.redirectError(w, r, err)
		return
	}
	metrics.RecordSocialCallback(providerName, callbackResult(result))

	token, expires, err := c.issuer.IssueSession(jwtx.SessionClaims{
		UserID:       result.Identity.ID,
		Username:     result.Identity.Username,
		Role:         result.Identity.Role,
		Theme:        result.Identity.Theme,
		ProfileImage: result.Identity.ProfileImage,
	})
	if err != nil {
		log.Error("session issue failed", logger.Err(err))
		c.redirectError(w, r, err)
		return
	}

	authctrl.SetSessionCookie(w, c.cookie, token, expires)
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, c.successURL, http.StatusFound)
}

func callbackResult(r *svc.CallbackResult) string {
	switch {
	case r.Provisioned:
		return "provisioned"
	case r.Linked:
		return "linked"
	default:
		return "ok"
	}
}

// redirectError vuelve a la app con el código de error en el query string.
func (c *CallbackController) redirectError(w http.ResponseWriter, r *http.Request, err error) {
	code := "social_failed"
	switch {
	case errors.Is(err, svc.ErrUnknownProvider):
		code = "unknown_provider"
	case errors.Is(err, svc.ErrStateInvalid), errors.Is(err, svc.ErrStateExpired), errors.Is(err, svc.ErrStateProvider):
		code = "state_invalid"
	case errors.Is(err, svc.ErrProviderNotAllowed):
		code = "provider_not_allowed"
	case errors.Is(err, svc.ErrAccountTaken):
		code = "account_taken"
	case errors.Is(err, svc.ErrProviderLinked):
		code = "provider_already_linked"
	}

	u, parseErr := url.Parse(c.successURL)
	if parseErr != nil {
		httperrors.WriteError(w, httperrors.ErrUpstreamProvider.WithDetail(code))
		return
	}
	q := u.Query()
	q.Set("error", code)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusFound)
}
