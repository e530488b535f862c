// Package social contiene los controllers del flujo OAuth/OpenID.
package social

import (
	authctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/auth"
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/social"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

// Controllers agrupa todos los controllers del dominio social.
type Controllers struct {
	Start    *StartController
	Callback *CallbackController
}

// NewControllers crea el agregador de controllers social.
func NewControllers(s svc.Services, issuer *jwtx.Issuer, cookie authctrl.SessionCookie, successURL string) *Controllers {
	return &Controllers{
		Start:    NewStartController(s.Start),
		Callback: NewCallbackController(s.Callback, issuer, cookie, successURL),
	}
}
