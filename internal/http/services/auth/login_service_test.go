package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/gatekeep/internal/auth/policy"
	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	"github.com/dropDatabas3/gatekeep/internal/security/password"
)

// ─── Fakes ───

type fakeUsers struct {
	repository.UserRepository

	byUsername map[string]*repository.User
	byID       map[string]*repository.User
	err        error
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[userID]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type fakeAccounts struct {
	repository.AccountRepository

	linked map[provider.ID]bool
	err    error
}

func (f *fakeAccounts) LinkedProviders(ctx context.Context, userID string) (map[provider.ID]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.linked == nil {
		return map[provider.ID]bool{}, nil
	}
	return f.linked, nil
}

func testUser(id, username, plainPassword string) *repository.User {
	u := &repository.User{
		ID:       id,
		Username: username,
		Role:     repository.RoleViewer,
		Theme:    repository.ThemeSystem,
	}
	if plainPassword != "" {
		hash, err := password.Hash(password.Default, plainPassword)
		if err != nil {
			panic(err)
		}
		u.PasswordHash = &hash
	}
	return u
}

func testResolver(flags provider.Flags, accounts *fakeAccounts) *visibility.Resolver {
	return visibility.NewResolver(provider.NewRegistry(flags), accounts, policy.Permissive())
}

func allEnabledFlags() provider.Flags {
	return provider.Flags{Credentials: true, Microsoft: true, Google: true, Steam: true}
}

// ─── Tests ───

func TestAuthorize_Success(t *testing.T) {
	user := testUser("u1", "alice", "hunter2222")
	svc := NewLoginService(LoginDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	identity, err := svc.Authorize(context.Background(), "alice", "hunter2222")
	if err != nil {
		t.Fatalf("Authorize err: %v", err)
	}
	if identity.ID != "u1" || identity.Username != "alice" {
		t.Fatalf("identity inesperada: %+v", identity)
	}
}

func TestAuthorize_TrimsUsername(t *testing.T) {
	user := testUser("u1", "alice", "hunter2222")
	svc := NewLoginService(LoginDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	if _, err := svc.Authorize(context.Background(), "  alice  ", "hunter2222"); err != nil {
		t.Fatalf("Authorize con espacios err: %v", err)
	}
}

func TestAuthorize_MissingCredentials(t *testing.T) {
	svc := NewLoginService(LoginDeps{
		Users:    &fakeUsers{},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	for _, c := range []struct{ u, p string }{
		{"", "x"}, {"alice", ""}, {"   ", "x"}, {"", ""},
	} {
		if _, err := svc.Authorize(context.Background(), c.u, c.p); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("(%q, %q): esperado ErrMissingCredentials, got %v", c.u, c.p, err)
		}
	}
}

// Las tres razones internas de rechazo son distinguibles para los logs pero
// el controller las colapsa en el mismo 401; acá verificamos que el service
// produzca la razón correcta para cada caso.
func TestAuthorize_RefusalReasons(t *testing.T) {
	hashed := testUser("u1", "alice", "hunter2222")
	noPassword := testUser("u2", "bob", "")

	users := &fakeUsers{byUsername: map[string]*repository.User{
		"alice": hashed,
		"bob":   noPassword,
	}}
	svc := NewLoginService(LoginDeps{
		Users:    users,
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	if _, err := svc.Authorize(context.Background(), "nadie", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("esperado ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Authorize(context.Background(), "bob", "x"); !errors.Is(err, ErrNoLocalPassword) {
		t.Fatalf("esperado ErrNoLocalPassword, got %v", err)
	}
	if _, err := svc.Authorize(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("esperado ErrInvalidPassword, got %v", err)
	}
}

func TestAuthorize_SteeringWhenPasswordHidden(t *testing.T) {
	// Credenciales apagadas globalmente, solo google visible: el intento de
	// password debe rechazarse con el código específico.
	flags := provider.Flags{Google: true}
	user := testUser("u1", "alice", "hunter2222")
	svc := NewLoginService(LoginDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(flags, &fakeAccounts{}),
	})

	_, err := svc.Authorize(context.Background(), "alice", "hunter2222")

	var steering *SteeringError
	if !errors.As(err, &steering) {
		t.Fatalf("esperado SteeringError, got %v", err)
	}
	if steering.Code != visibility.CodeOAuthOnlyGoogle {
		t.Fatalf("code = %q, esperado %q", steering.Code, visibility.CodeOAuthOnlyGoogle)
	}
	if len(steering.Providers) != 1 || steering.Providers[0] != provider.Google {
		t.Fatalf("providers = %v, esperado [google]", steering.Providers)
	}
}

func TestAuthorize_DisablePasswordWhenLinked(t *testing.T) {
	flags := allEnabledFlags()
	flags.DisablePasswordWhenLinked = true

	user := testUser("u1", "alice", "hunter2222")
	svc := NewLoginService(LoginDeps{
		Users: &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(flags, &fakeAccounts{
			linked: map[provider.ID]bool{provider.Steam: true},
		}),
	})

	// Aunque el password sea correcto, la cuenta vinculada lo apaga.
	_, err := svc.Authorize(context.Background(), "alice", "hunter2222")

	var steering *SteeringError
	if !errors.As(err, &steering) {
		t.Fatalf("esperado SteeringError, got %v", err)
	}
}

func TestAuthorize_FailsClosedOnStoreError(t *testing.T) {
	boom := errors.New("store down")
	svc := NewLoginService(LoginDeps{
		Users:    &fakeUsers{err: boom},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{}),
	})

	_, err := svc.Authorize(context.Background(), "alice", "x")
	if err == nil || errors.Is(err, ErrUserNotFound) {
		t.Fatalf("un error de infraestructura debe propagar como error duro, got %v", err)
	}
}

func TestAuthorize_FailsClosedOnVisibilityError(t *testing.T) {
	user := testUser("u1", "alice", "hunter2222")
	svc := NewLoginService(LoginDeps{
		Users:    &fakeUsers{byUsername: map[string]*repository.User{"alice": user}},
		Resolver: testResolver(allEnabledFlags(), &fakeAccounts{err: errors.New("accounts down")}),
	})

	if _, err := svc.Authorize(context.Background(), "alice", "hunter2222"); err == nil {
		t.Fatal("la resolución de visibilidad caída debe rechazar el login")
	}
}
