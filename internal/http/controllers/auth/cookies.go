package auth

import (
	"net/http"
	"strings"
	"time"
)

// sameSiteMode mapea el valor de config a la constante de net/http.
// Valores desconocidos o vacíos caen en Lax.
func sameSiteMode(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// SetSessionCookie escribe la cookie de sesión HttpOnly.
func SetSessionCookie(w http.ResponseWriter, c SessionCookie, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSiteMode(c.SameSite),
	})
}

// ClearSessionCookie invalida la cookie de sesión.
func ClearSessionCookie(w http.ResponseWriter, c SessionCookie) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSiteMode(c.SameSite),
	})
}
