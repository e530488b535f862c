package social

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
)

func testSigner() *StateSigner {
	return &StateSigner{Issuer: jwtx.NewIssuer("gatekeep-test", []byte("test-secret-0123456789"), time.Hour)}
}

func TestState_RoundTrip(t *testing.T) {
	s := testSigner()

	token, err := s.SignState(StateClaims{
		Provider: "google",
		Mode:     ModeSignIn,
		Nonce:    NewNonce(),
	})
	if err != nil {
		t.Fatalf("SignState err: %v", err)
	}

	claims, err := s.ParseState(token)
	if err != nil {
		t.Fatalf("ParseState err: %v", err)
	}
	if claims.Provider != "google" || claims.Mode != ModeSignIn {
		t.Fatalf("claims inesperadas: %+v", claims)
	}
	if claims.LinkUserID != "" {
		t.Fatal("link_uid no debería viajar en modo signin")
	}
}

func TestState_LinkModeCarriesUserID(t *testing.T) {
	s := testSigner()

	token, err := s.SignState(StateClaims{
		Provider:   "steam",
		Mode:       ModeLink,
		LinkUserID: "u42",
		Nonce:      NewNonce(),
	})
	if err != nil {
		t.Fatalf("SignState err: %v", err)
	}

	claims, err := s.ParseState(token)
	if err != nil {
		t.Fatalf("ParseState err: %v", err)
	}
	if claims.Mode != ModeLink || claims.LinkUserID != "u42" {
		t.Fatalf("claims inesperadas: %+v", claims)
	}
}

func TestState_RejectsTamperedToken(t *testing.T) {
	s := testSigner()

	token, err := s.SignState(StateClaims{Provider: "google", Mode: ModeSignIn, Nonce: NewNonce()})
	if err != nil {
		t.Fatalf("SignState err: %v", err)
	}

	// Tocar un byte del payload invalida la firma.
	parts := strings.Split(token, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := s.ParseState(strings.Join(parts, ".")); !errors.Is(err, ErrStateInvalid) {
		t.Fatalf("esperado ErrStateInvalid, got %v", err)
	}
}

func TestState_RejectsForeignIssuer(t *testing.T) {
	s := testSigner()
	other := &StateSigner{Issuer: jwtx.NewIssuer("otro-servicio", []byte("test-secret-0123456789"), time.Hour)}

	token, err := other.SignState(StateClaims{Provider: "google", Mode: ModeSignIn, Nonce: NewNonce()})
	if err != nil {
		t.Fatalf("SignState err: %v", err)
	}

	if _, err := s.ParseState(token); !errors.Is(err, ErrStateInvalid) {
		t.Fatalf("esperado ErrStateInvalid por issuer ajeno, got %v", err)
	}
}

func TestState_RejectsGarbage(t *testing.T) {
	s := testSigner()
	for _, tok := range []string{"", "no-es-un-jwt", "a.b.c"} {
		if _, err := s.ParseState(tok); !errors.Is(err, ErrStateInvalid) {
			t.Fatalf("token %q: esperado ErrStateInvalid, got %v", tok, err)
		}
	}
}

func TestNewNonce_UniqueAndHex(t *testing.T) {
	a, b := NewNonce(), NewNonce()
	if a == b {
		t.Fatal("dos nonces consecutivos no deberían coincidir")
	}
	if len(a) != 32 {
		t.Fatalf("len(nonce) = %d, esperado 32", len(a))
	}
}
