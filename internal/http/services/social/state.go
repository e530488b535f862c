package social

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

// StateClaims contains the claims for the OAuth state JWT.
// Mode distingue sign-in de link; LinkUserID solo viaja en modo link.
type StateClaims struct {
	Provider   string `json:"provider"`
	Mode       string `json:"mode"`
	LinkUserID string `json:"link_uid,omitempty"`
	Nonce      string `json:"nonce"`
}

// State modes.
const (
	ModeSignIn = "signin"
	ModeLink   = "link"
)

// StateAudience is the expected audience for social state tokens.
const StateAudience = "social-state"

// StateTTL limita la vida del flujo completo start -> callback.
const StateTTL = 10 * time.Minute

// Errors for state operations.
var (
	ErrStateInvalid  = errors.New("invalid state token")
	ErrStateExpired  = errors.New("state token expired")
	ErrStateProvider = errors.New("state provider mismatch")
)

// StateSigner firma y valida el state JWT del flujo social.
type StateSigner struct {
	Issuer *jwtx.Issuer
}

// NewNonce genera un nonce aleatorio hex de 32 chars.
func NewNonce() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// SignState signs a state JWT.
func (s *StateSigner) SignState(claims StateClaims) (string, error) {
	now := time.Now().UTC()
	mapClaims := jwtv5.MapClaims{
		"iss":      s.Issuer.Iss,
		"aud":      StateAudience,
		"exp":      now.Add(StateTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"provider": claims.Provider,
		"mode":     claims.Mode,
		"nonce":    claims.Nonce,
	}
	if claims.LinkUserID != "" {
		mapClaims["link_uid"] = claims.LinkUserID
	}
	return s.Issuer.SignRaw(mapClaims)
}

// ParseState parses and validates a state JWT.
func (s *StateSigner) ParseState(tokenString string) (*StateClaims, error) {
	tk, err := jwtv5.Parse(tokenString, s.Issuer.Keyfunc(), jwtv5.WithValidMethods([]string{"HS256"}))
	if err != nil || !tk.Valid {
		return nil, ErrStateInvalid
	}

	mapClaims, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrStateInvalid
	}

	if iss, _ := mapClaims["iss"].(string); iss != s.Issuer.Iss {
		return nil, ErrStateInvalid
	}
	if aud, _ := mapClaims["aud"].(string); aud != StateAudience {
		return nil, ErrStateInvalid
	}

	// Check expiration with 30s grace
	if expf, ok := mapClaims["exp"].(float64); ok {
		if time.Unix(int64(expf), 0).Before(time.Now().Add(-30 * time.Second)) {
			return nil, ErrStateExpired
		}
	}

	claims := &StateClaims{
		Provider:   getString(mapClaims, "provider"),
		Mode:       getString(mapClaims, "mode"),
		LinkUserID: getString(mapClaims, "link_uid"),
		Nonce:      getString(mapClaims, "nonce"),
	}
	if claims.Nonce == "" || claims.Provider == "" {
		return nil, ErrStateInvalid
	}
	return claims, nil
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
