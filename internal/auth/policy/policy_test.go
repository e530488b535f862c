package policy

import (
	"context"
	"testing"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
)

func TestOAuthPolicy_Any(t *testing.T) {
	p := Any()
	for _, id := range provider.OAuthOrder {
		if !p.Allows(id) {
			t.Fatalf("Any() debería permitir %s", id)
		}
	}
}

func TestOAuthPolicy_ZeroValueIsAny(t *testing.T) {
	var p OAuthPolicy
	if !p.Allows(provider.Google) {
		t.Fatal("el zero value debería comportarse como Any")
	}
}

func TestOAuthPolicy_None(t *testing.T) {
	p := None()
	for _, id := range provider.OAuthOrder {
		if p.Allows(id) {
			t.Fatalf("None() no debería permitir %s", id)
		}
	}
}

func TestOAuthPolicy_AllowOnly(t *testing.T) {
	p := AllowOnly(provider.Microsoft, provider.Steam)

	if !p.Allows(provider.Microsoft) {
		t.Fatal("microsoft debería estar permitido")
	}
	if !p.Allows(provider.Steam) {
		t.Fatal("steam debería estar permitido")
	}
	if p.Allows(provider.Google) {
		t.Fatal("google no debería estar permitido")
	}
}

func TestOAuthPolicy_AllowOnlyEmpty(t *testing.T) {
	p := AllowOnly()
	for _, id := range provider.OAuthOrder {
		if p.Allows(id) {
			t.Fatalf("AllowOnly() sin args no debería permitir %s", id)
		}
	}
}

func TestPermissive_Defaults(t *testing.T) {
	pol, err := Permissive().PolicyFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("PolicyFor err: %v", err)
	}
	if !pol.PasswordEnabled {
		t.Fatal("el default debería tener password habilitado")
	}
	if !pol.OAuth.Allows(provider.Microsoft) {
		t.Fatal("el default debería permitir cualquier OAuth")
	}
}
