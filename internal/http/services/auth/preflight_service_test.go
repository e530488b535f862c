package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
)

func TestPreflight_NullForVisiblePassword(t *testing.T) {
	user := testUser("u1", "alice", "hunter2222")
	svc := NewPreflightService(PreflightDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	resp := svc.Preflight(context.Background(), "alice")
	if resp.Code != nil {
		t.Fatalf("code = %v, esperado null", *resp.Code)
	}
}

func TestPreflight_NullForUnknownUser(t *testing.T) {
	// Anti-enumeración: usuario inexistente responde exactamente igual que
	// uno con password visible.
	svc := NewPreflightService(PreflightDeps{
		Users:    &fakeUsers{},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	resp := svc.Preflight(context.Background(), "nadie")
	if resp.Code != nil {
		t.Fatalf("code = %v, esperado null", *resp.Code)
	}
	if len(resp.Providers) != 0 {
		t.Fatalf("providers = %v, esperado vacío", resp.Providers)
	}
}

func TestPreflight_NullForEmptyUsername(t *testing.T) {
	svc := NewPreflightService(PreflightDeps{
		Users:    &fakeUsers{},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	for _, username := range []string{"", "   "} {
		if resp := svc.Preflight(context.Background(), username); resp.Code != nil {
			t.Fatalf("username %q: code = %v, esperado null", username, *resp.Code)
		}
	}
}

func TestPreflight_SteeringCode(t *testing.T) {
	flags := provider.Flags{Microsoft: true}
	user := testUser("u1", "alice", "hunter2222")
	svc := NewPreflightService(PreflightDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(flags, &fakeAccounts{}),
	})

	resp := svc.Preflight(context.Background(), "alice")
	if resp.Code == nil {
		t.Fatal("esperado código de steering, got null")
	}
	if *resp.Code != visibility.CodeOAuthOnlyMicrosoft {
		t.Fatalf("code = %q, esperado %q", *resp.Code, visibility.CodeOAuthOnlyMicrosoft)
	}
	if len(resp.Providers) != 1 || resp.Providers[0] != "microsoft" {
		t.Fatalf("providers = %v, esperado [microsoft]", resp.Providers)
	}
}

func TestPreflight_GenericCodeForMultipleProviders(t *testing.T) {
	flags := provider.Flags{Google: true, Steam: true}
	user := testUser("u1", "alice", "hunter2222")
	svc := NewPreflightService(PreflightDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(flags, &fakeAccounts{}),
	})

	resp := svc.Preflight(context.Background(), "alice")
	if resp.Code == nil || *resp.Code != visibility.CodeOAuthOnly {
		t.Fatalf("resp = %+v, esperado OAUTH_ONLY", resp)
	}
	if len(resp.Providers) != 2 || resp.Providers[0] != "google" || resp.Providers[1] != "steam" {
		t.Fatalf("providers = %v, esperado [google steam]", resp.Providers)
	}
}

func TestPreflight_FailsOpenOnStoreError(t *testing.T) {
	svc := NewPreflightService(PreflightDeps{
		Users:    &fakeUsers{err: errors.New("store down")},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	resp := svc.Preflight(context.Background(), "alice")
	if resp.Code != nil {
		t.Fatalf("con el store caído el hint debe degradar a null, got %v", *resp.Code)
	}
}

func TestPreflight_FailsOpenOnVisibilityError(t *testing.T) {
	user := testUser("u1", "alice", "hunter2222")
	svc := NewPreflightService(PreflightDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{err: errors.New("accounts down")}),
	})

	resp := svc.Preflight(context.Background(), "alice")
	if resp.Code != nil {
		t.Fatalf("con visibilidad caída el hint debe degradar a null, got %v", *resp.Code)
	}
}
