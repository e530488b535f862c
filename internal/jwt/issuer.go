// Package jwt emite y valida los tokens de sesión de la aplicación.
package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Errores de validación de tokens.
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("invalid issuer")
)

// Issuer firma tokens de sesión con HMAC-SHA256 usando el secret del proceso.
type Issuer struct {
	Iss        string        // "iss"
	Secret     []byte        // clave HMAC (config jwt.secret)
	SessionTTL time.Duration // TTL de la sesión (ej: 24h)
}

func NewIssuer(iss string, secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{Iss: iss, Secret: secret, SessionTTL: ttl}
}

// Keyfunc retorna el jwt.Keyfunc para validar tokens firmados por este issuer.
func (i *Issuer) Keyfunc() jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		return i.Secret, nil
	}
}

// SignRaw firma un MapClaims arbitrario y devuelve el JWT firmado.
// Usado por la sesión y por los state tokens del flujo social.
func (i *Issuer) SignRaw(claims jwtv5.MapClaims) (string, error) {
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	return tk.SignedString(i.Secret)
}

// ParseRaw valida firma (HS256), chequea iss y valida exp/nbf con una
// pequeña tolerancia. Devuelve las claims como map[string]any.
func (i *Issuer) ParseRaw(token string) (map[string]any, error) {
	tok, err := jwtv5.Parse(token, i.Keyfunc(), jwtv5.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if i.Iss != "" {
		if iss, _ := claims["iss"].(string); iss != i.Iss {
			return nil, ErrInvalidIssuer
		}
	}

	now := time.Now()
	if expf, ok := claims["exp"].(float64); ok {
		if time.Unix(int64(expf), 0).Before(now.Add(-30 * time.Second)) {
			return nil, ErrInvalidToken
		}
	}
	if nbff, ok := claims["nbf"].(float64); ok {
		if time.Unix(int64(nbff), 0).After(now.Add(30 * time.Second)) {
			return nil, ErrInvalidToken
		}
	}

	out := make(map[string]any, len(claims))
	for k, v := range claims {
		out[k] = v
	}
	return out, nil
}
