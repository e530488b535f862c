package visibility

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/gatekeep/internal/auth/policy"
	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
)

// fakeAccounts implementa repository.AccountRepository con datos fijos.
type fakeAccounts struct {
	linked map[provider.ID]bool
	err    error
}

func (f *fakeAccounts) ListByUserID(ctx context.Context, userID string) ([]repository.Account, error) {
	return nil, nil
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

func (f *fakeAccounts) GetByProviderAccount(ctx context.Context, p provider.ID, id string) (*repository.Account, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) GetByID(ctx context.Context, accountID string) (*repository.Account, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeAccounts) Link(ctx context.Context, input repository.LinkAccountInput) (*repository.Account, error) {
	return nil, nil
}

func (f *fakeAccounts) Unlink(ctx context.Context, userID, accountID string) error {
	return nil
}

func resolverWith(flags provider.Flags, accounts *fakeAccounts, pol policy.Provider) *Resolver {
	if pol == nil {
		pol = policy.Permissive()
	}
	return NewResolver(provider.NewRegistry(flags), accounts, pol)
}

func allOn() provider.Flags {
	return provider.Flags{Credentials: true, Microsoft: true, Google: true, Steam: true}
}

func TestForUser_AllEnabledPermissive(t *testing.T) {
	r := resolverWith(allOn(), &fakeAccounts{}, nil)

	d, err := r.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ForUser err: %v", err)
	}
	if !d.Credentials || !d.Microsoft || !d.Google || !d.Steam {
		t.Fatalf("todo debería estar visible: %+v", d)
	}
}

func TestForUser_GlobalFlagIsUpperBound(t *testing.T) {
	flags := allOn()
	flags.Google = false
	r := resolverWith(flags, &fakeAccounts{}, nil)

	d, err := r.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ForUser err: %v", err)
	}
	if d.Google {
		t.Fatal("google apagado globalmente no puede quedar visible")
	}
	if !d.Microsoft || !d.Steam {
		t.Fatal("los otros providers no deberían verse afectados")
	}
}

func TestForUser_PolicyOnlyNarrows(t *testing.T) {
	// Política que permite solo Steam; Steam está apagado globalmente.
	flags := allOn()
	flags.Steam = false
	pol := &policy.Static{Policy: policy.UserPolicy{
		PasswordEnabled: true,
		OAuth:           policy.AllowOnly(provider.Steam),
	}}
	r := resolverWith(flags, &fakeAccounts{}, pol)

	d, err := r.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ForUser err: %v", err)
	}
	// La política no puede encender lo que el global apagó.
	if d.Steam {
		t.Fatal("la política no puede habilitar un provider globalmente apagado")
	}
	if d.Microsoft || d.Google {
		t.Fatal("la política debería haber acotado microsoft y google")
	}
}

func TestForUser_PolicyDisablesPassword(t *testing.T) {
	pol := &policy.Static{Policy: policy.UserPolicy{
		PasswordEnabled: false,
		OAuth:           policy.Any(),
	}}
	r := resolverWith(allOn(), &fakeAccounts{}, pol)

	d, err := r.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ForUser err: %v", err)
	}
	if d.Credentials {
		t.Fatal("password deshabilitado por política debería quedar oculto")
	}
	if !d.Microsoft {
		t.Fatal("la política de password no debería tocar los providers OAuth")
	}
}

func TestForUser_DisablePasswordWhenLinked(t *testing.T) {
	flags := allOn()
	flags.DisablePasswordWhenLinked = true

	cases := []struct {
		name   string
		linked map[provider.ID]bool
		want   bool
	}{
		{"sin cuentas vinculadas", nil, true},
		{"microsoft vinculado", map[provider.ID]bool{provider.Microsoft: true}, false},
		{"steam vinculado", map[provider.ID]bool{provider.Steam: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := resolverWith(flags, &fakeAccounts{linked: tc.linked}, nil)
			d, err := r.ForUser(context.Background(), "u1")
			if err != nil {
				t.Fatalf("ForUser err: %v", err)
			}
			if d.Credentials != tc.want {
				t.Fatalf("credentials = %v, esperado %v", d.Credentials, tc.want)
			}
		})
	}
}

func TestForUser_DisablePasswordWhenLinked_FlagOff(t *testing.T) {
	// Sin el flag, una cuenta vinculada no apaga el password.
	r := resolverWith(allOn(), &fakeAccounts{linked: map[provider.ID]bool{provider.Google: true}}, nil)

	d, err := r.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ForUser err: %v", err)
	}
	if !d.Credentials {
		t.Fatal("sin el flag global, el link no debería apagar el password")
	}
}

func TestForUser_AccountsErrorPropagates(t *testing.T) {
	boom := errors.New("store down")
	r := resolverWith(allOn(), &fakeAccounts{err: boom}, nil)

	_, err := r.ForUser(context.Background(), "u1")
	if !errors.Is(err, boom) {
		t.Fatalf("el error del store debería propagar, got %v", err)
	}
}

func TestVisibleOAuth_CanonicalOrder(t *testing.T) {
	d := Decision{Microsoft: true, Google: true, Steam: true}
	got := d.VisibleOAuth()

	want := []provider.ID{provider.Microsoft, provider.Google, provider.Steam}
	if len(got) != len(want) {
		t.Fatalf("len = %d, esperado %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("orden: got %v, esperado %v", got, want)
		}
	}
}
