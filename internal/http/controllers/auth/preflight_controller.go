package auth

import (
	"encoding/json"
	"net/http"

	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/gatekeep/internal/http/errors"
	"github.com/dropDatabas3/gatekeep/internal/http/metrics"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/auth"
)

const (
	maxPreflightBodySize = 16 * 1024 // 16KB
	contentTypeJSON      = "application/json; charset=utf-8"
)

// PreflightController maneja el hint previo al login.
type PreflightController struct {
	service svc.PreflightService
}

// NewPreflightController crea un nuevo controller de preflight.
func NewPreflightController(service svc.PreflightService) *PreflightController {
	return &PreflightController{service: service}
}

// Preflight maneja POST /v1/auth/preflight
//
// Siempre responde 200: el servicio degrada a code=null ante cualquier
// error interno y para usuarios desconocidos.
func (c *PreflightController) Preflight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPreflightBodySize)
	defer r.Body.Close()

	var req dto.PreflightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	resp := c.service.Preflight(r.Context(), req.Username)
	if resp.Code != nil {
		metrics.RecordPreflight(*resp.Code)
	} else {
		metrics.RecordPreflight("")
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
