package social

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
)

func TestUsernameFromProfile_EmailLocalPart(t *testing.T) {
	got := usernameFromProfile(provider.Google, &oauth.Profile{
		Email: "Ana.Lopez@example.com",
		Name:  "Ana López",
	})
	if got != "ana.lopez" {
		t.Fatalf("got %q, esperado %q", got, "ana.lopez")
	}
}

func TestUsernameFromProfile_FallsBackToName(t *testing.T) {
	got := usernameFromProfile(provider.Steam, &oauth.Profile{Name: "Gordon Freeman"})
	if got != "gordon.freeman" {
		t.Fatalf("got %q, esperado %q", got, "gordon.freeman")
	}
}

func TestUsernameFromProfile_FallsBackToProviderID(t *testing.T) {
	got := usernameFromProfile(provider.Steam, &oauth.Profile{AccountID: "76561198000000000"})
	if got != "steam_76561198000000000" {
		t.Fatalf("got %q", got)
	}
}

// provisionUsers registra altas y bajas para verificar la compensación
// cuando el link posterior falla.
type provisionUsers struct {
	created []string
	deleted []string
}

func (f *provisionUsers) GetByID(ctx context.Context, id string) (*repository.User, error) {
	return nil, repository.ErrNotFound
}

func (f *provisionUsers) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	return nil, repository.ErrNotFound
}

func (f *provisionUsers) List(ctx context.Context) ([]repository.User, error) { return nil, nil }

func (f *provisionUsers) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	f.created = append(f.created, in.Username)
	return &repository.User{ID: "u-new", Username: in.Username, Role: in.Role}, nil
}

func (f *provisionUsers) Update(ctx context.Context, id string, in repository.UpdateUserInput) (*repository.User, error) {
	return nil, repository.ErrNotFound
}

func (f *provisionUsers) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *provisionUsers) CountByRole(ctx context.Context, role repository.Role) (int, error) {
	return 0, nil
}

func (f *provisionUsers) Count(ctx context.Context) (int, error) { return 0, nil }

// provisionAccounts falla todo Link con el error configurado.
type provisionAccounts struct {
	linkErr error
	linked  []repository.LinkAccountInput
}

func (f *provisionAccounts) ListByUserID(ctx context.Context, userID string) ([]repository.Account, error) {
	return nil, nil
}

func (f *provisionAccounts) LinkedProviders(ctx context.Context, userID string) (map[provider.ID]bool, error) {
	return map[provider.ID]bool{}, nil
}

func (f *provisionAccounts) GetByProviderAccount(ctx context.Context, p provider.ID, providerAccountID string) (*repository.Account, error) {
	return nil, repository.ErrNotFound
}

func (f *provisionAccounts) GetByID(ctx context.Context, accountID string) (*repository.Account, error) {
	return nil, repository.ErrNotFound
}

func (f *provisionAccounts) Link(ctx context.Context, in repository.LinkAccountInput) (*repository.Account, error) {
	if f.linkErr != nil {
		return nil, f.linkErr
	}
	f.linked = append(f.linked, in)
	return &repository.Account{ID: "a1", UserID: in.UserID, Provider: in.Provider}, nil
}

func (f *provisionAccounts) Unlink(ctx context.Context, userID, accountID string) error {
	return nil
}

func TestProvision_RollsBackUserOnLinkFailure(t *testing.T) {
	users := &provisionUsers{}
	accounts := &provisionAccounts{linkErr: errors.New("store down")}
	svc := &callbackService{deps: CallbackDeps{Users: users, Accounts: accounts}}

	_, err := svc.provision(context.Background(), provider.Steam, &oauth.Profile{
		AccountID: "76561198000000000",
		Name:      "Gordon Freeman",
	})
	if err == nil {
		t.Fatal("esperado error cuando el link falla")
	}
	if len(users.created) != 1 {
		t.Fatalf("created = %v, esperado un alta", users.created)
	}
	if len(users.deleted) != 1 || users.deleted[0] != "u-new" {
		t.Fatalf("deleted = %v, esperado [u-new]: un link fallido no puede dejar un usuario sin métodos de acceso", users.deleted)
	}
}

func TestProvision_KeepsUserWhenLinkSucceeds(t *testing.T) {
	users := &provisionUsers{}
	accounts := &provisionAccounts{}
	svc := &callbackService{deps: CallbackDeps{Users: users, Accounts: accounts}}

	user, err := svc.provision(context.Background(), provider.Google, &oauth.Profile{
		AccountID: "g-1",
		Email:     "ana@example.com",
	})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if user.Role != repository.RoleViewer {
		t.Fatalf("role = %s, esperado VIEWER", user.Role)
	}
	if len(users.deleted) != 0 {
		t.Fatalf("deleted = %v, no debe haber baja", users.deleted)
	}
	if len(accounts.linked) != 1 || accounts.linked[0].UserID != user.ID {
		t.Fatalf("linked = %v", accounts.linked)
	}
}

func TestSanitizeUsername(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Ana López", "ana.lpez"},
		{"  john_doe  ", "john_doe"},
		{"a-b.c_d", "a-b.c_d"},
		{"ñ¡¿", "user"},
		{"", "user"},
		{"UPPER", "upper"},
	}
	for _, tc := range cases {
		if got := sanitizeUsername(tc.in); got != tc.want {
			t.Fatalf("sanitizeUsername(%q) = %q, esperado %q", tc.in, got, tc.want)
		}
	}
}
