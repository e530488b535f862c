// Package auth contiene los controllers de autenticación.
package auth

import (
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/auth"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

// SessionCookie describe la cookie de sesión emitida por login y social.
type SessionCookie struct {
	Name     string
	Domain   string
	SameSite string // "lax" | "strict" | "none"; vacío = lax
	Secure   bool
}

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	Preflight *PreflightController
	Login     *LoginController
	Logout    *LogoutController
	Me        *MeController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Services, issuer *jwtx.Issuer, cookie SessionCookie) *Controllers {
	return &Controllers{
		Preflight: NewPreflightController(s.Preflight),
		Login:     NewLoginController(s.Login, issuer, cookie),
		Logout:    NewLogoutController(cookie),
		Me:        NewMeController(),
	}
}
