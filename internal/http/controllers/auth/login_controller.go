package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/metrics"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/auth"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

const maxLoginBodySize = 64 * 1024 // 64KB

// LoginController maneja el endpoint de login.
type LoginController struct {
	service svc.LoginService
	issuer  *jwtx.Issuer
	cookie  SessionCookie
}

// NewLoginController crea un nuevo controller de login.
func NewLoginController(service svc.LoginService, issuer *jwtx.Issuer, cookie SessionCookie) *LoginController {
	return &LoginController{service: service, issuer: issuer, cookie: cookie}
}

// Login maneja POST /v1/auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodySize)
	defer r.Body.Close()

	var req dto.LoginRequest
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "application/json"):
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.WriteError(w, httperrors.ErrInvalidJSON)
			return
		}
	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("invalid form"))
			return
		}
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	default:
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("unsupported content type"))
		return
	}

	identity, err := c.service.Authorize(ctx, req.Username, req.Password)
	if err != nil {
		log.Debug("login refused", logger.Err(err))
		metrics.RecordLoginAttempt(loginResult(err))
		writeLoginError(w, err)
		return
	}
	metrics.RecordLoginAttempt("ok")

	token, expires, err := c.issuer.IssueSession(jwtx.SessionClaims{
		UserID:       identity.ID,
		Username:     identity.Username,
		Role:         identity.Role,
		Theme:        identity.Theme,
		ProfileImage: identity.ProfileImage,
	})
	if err != nil {
		log.Error("session issue failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	SetSessionCookie(w, c.cookie, token, expires)
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.LoginResponse{
		Token: token,
		User: dto.MeResponse{
			ID:           identity.ID,
			Username:     identity.Username,
			Role:         identity.Role,
			Theme:        identity.Theme,
			ProfileImage: identity.ProfileImage,
		},
	})
}

// ─── Helpers ───

// loginResult clasifica el error para la métrica de intentos.
func loginResult(err error) string {
	var steering *svc.SteeringError
	switch {
	case errors.As(err, &steering):
		return "steered"
	case errors.Is(err, svc.ErrMissingCredentials),
		errors.Is(err, svc.ErrUserNotFound),
		errors.Is(err, svc.ErrNoLocalPassword),
		errors.Is(err, svc.ErrInvalidPassword):
		return "invalid"
	default:
		return "error"
	}
}

// writeLoginError mapea errores del service a la superficie del cliente.
// USER_NOT_FOUND, NO_LOCAL_PASSWORD e INVALID_PASSWORD colapsan en el
// mismo 401 genérico; los códigos de steering viajan tal cual.
func writeLoginError(w http.ResponseWriter, err error) {
	var steering *svc.SteeringError
	switch {
	case errors.Is(err, svc.ErrMissingCredentials):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("username y password son obligatorios"))

	case errors.As(err, &steering):
		providers := make([]string, len(steering.Providers))
		for i, p := range steering.Providers {
			providers[i] = string(p)
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":      steering.Code,
			"message":   "El inicio de sesión con contraseña no está disponible para esta cuenta.",
			"providers": providers,
		})

	case errors.Is(err, svc.ErrUserNotFound),
		errors.Is(err, svc.ErrNoLocalPassword),
		errors.Is(err, svc.ErrInvalidPassword):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)

	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
