package jwt

import (
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

func testIssuer() *Issuer {
	return NewIssuer("gatekeep-test", []byte("test-secret-0123456789"), time.Hour)
}

func TestIssueParseSession_RoundTrip(t *testing.T) {
	i := testIssuer()

	token, exp, err := i.IssueSession(SessionClaims{
		UserID:       "u1",
		Username:     "alice",
		Role:         "ADMIN",
		Theme:        "dark",
		ProfileImage: "https://cdn.example.com/a.png",
	})
	if err != nil {
		t.Fatalf("IssueSession err: %v", err)
	}
	if time.Until(exp) < 55*time.Minute {
		t.Fatalf("exp demasiado cerca: %v", exp)
	}

	sc, err := i.ParseSession(token)
	if err != nil {
		t.Fatalf("ParseSession err: %v", err)
	}
	if sc.UserID != "u1" || sc.Username != "alice" || sc.Role != "ADMIN" || sc.Theme != "dark" {
		t.Fatalf("claims inesperadas: %+v", sc)
	}
	if sc.ProfileImage != "https://cdn.example.com/a.png" {
		t.Fatalf("picture = %q", sc.ProfileImage)
	}
}

func TestParseSession_RejectsWrongSecret(t *testing.T) {
	token, _, err := testIssuer().IssueSession(SessionClaims{UserID: "u1"})
	if err != nil {
		t.Fatalf("IssueSession err: %v", err)
	}

	other := NewIssuer("gatekeep-test", []byte("otro-secret"), time.Hour)
	if _, err := other.ParseSession(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("esperado ErrInvalidToken, got %v", err)
	}
}

func TestParseSession_RejectsWrongIssuer(t *testing.T) {
	other := NewIssuer("otro-servicio", []byte("test-secret-0123456789"), time.Hour)
	token, _, err := other.IssueSession(SessionClaims{UserID: "u1"})
	if err != nil {
		t.Fatalf("IssueSession err: %v", err)
	}

	if _, err := testIssuer().ParseSession(token); !errors.Is(err, ErrInvalidIssuer) {
		t.Fatalf("esperado ErrInvalidIssuer, got %v", err)
	}
}

func TestParseSession_RejectsExpired(t *testing.T) {
	i := testIssuer()

	// Token firmado a mano con exp en el pasado, fuera de la tolerancia.
	past := time.Now().Add(-2 * time.Hour)
	token, err := i.SignRaw(jwtv5.MapClaims{
		"iss": i.Iss,
		"aud": SessionAudience,
		"sub": "u1",
		"iat": past.Unix(),
		"exp": past.Add(time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("SignRaw err: %v", err)
	}

	if _, err := i.ParseSession(token); err == nil {
		t.Fatal("un token vencido debería rechazarse")
	}
}

func TestParseSession_RejectsWrongAudience(t *testing.T) {
	i := testIssuer()

	now := time.Now()
	token, err := i.SignRaw(jwtv5.MapClaims{
		"iss": i.Iss,
		"aud": "social-state",
		"sub": "u1",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("SignRaw err: %v", err)
	}

	// Un state token no puede usarse como sesión.
	if _, err := i.ParseSession(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("esperado ErrInvalidToken, got %v", err)
	}
}

func TestParseSession_RejectsMissingSubject(t *testing.T) {
	i := testIssuer()

	now := time.Now()
	token, err := i.SignRaw(jwtv5.MapClaims{
		"iss": i.Iss,
		"aud": SessionAudience,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("SignRaw err: %v", err)
	}

	if _, err := i.ParseSession(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("esperado ErrInvalidToken, got %v", err)
	}
}
