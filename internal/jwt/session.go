package jwt

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// SessionAudience es el "aud" de los tokens de sesión.
const SessionAudience = "session"

// SessionClaims es la identidad mínima que viaja en el token de sesión.
// Nunca incluye el password hash ni claims del provider.
type SessionClaims struct {
	UserID       string
	Username     string
	Role         string
	Theme        string
	ProfileImage string
}

// IssueSession emite un token de sesión para la identidad dada.
func (i *Issuer) IssueSession(sc SessionClaims) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.SessionTTL)

	claims := jwtv5.MapClaims{
		"iss":      i.Iss,
		"aud":      SessionAudience,
		"sub":      sc.UserID,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      exp.Unix(),
		"username": sc.Username,
		"role":     sc.Role,
		"theme":    sc.Theme,
	}
	if sc.ProfileImage != "" {
		claims["picture"] = sc.ProfileImage
	}

	signed, err := i.SignRaw(claims)
	return signed, exp, err
}

// ParseSession valida un token de sesión y extrae la identidad.
func (i *Issuer) ParseSession(token string) (*SessionClaims, error) {
	claims, err := i.ParseRaw(token)
	if err != nil {
		return nil, err
	}
	if aud, _ := claims["aud"].(string); aud != SessionAudience {
		return nil, ErrInvalidToken
	}

	sc := &SessionClaims{
		UserID:       str(claims, "sub"),
		Username:     str(claims, "username"),
		Role:         str(claims, "role"),
		Theme:        str(claims, "theme"),
		ProfileImage: str(claims, "picture"),
	}
	if sc.UserID == "" {
		return nil, ErrInvalidToken
	}
	return sc, nil
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
