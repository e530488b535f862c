package auth

import "encoding/json"

// PreflightRequest represents the request body for POST /v1/auth/preflight
type PreflightRequest struct {
	Username string `json:"username"`
}

// PreflightResponse is the steering hint for the sign-in form.
// Code is null when the password field should be shown as usual.
type PreflightResponse struct {
	Code *string `json:"code"`
	// Providers lists the visible OAuth providers (canonical order)
	// whenever Code is set; it can be empty (policy lockout).
	Providers []string `json:"providers"`
}

// MarshalJSON fija las dos formas del contrato: sin código la respuesta es
// exactamente {"code":null}; con código la lista de providers siempre
// viaja, incluso vacía.
func (r PreflightResponse) MarshalJSON() ([]byte, error) {
	if r.Code == nil {
		return []byte(`{"code":null}`), nil
	}
	providers := r.Providers
	if providers == nil {
		providers = []string{}
	}
	return json.Marshal(struct {
		Code      *string  `json:"code"`
		Providers []string `json:"providers"`
	}{Code: r.Code, Providers: providers})
}
