package visibility

import (
	"testing"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
)

func TestSteering_SingleProviderSpecificCode(t *testing.T) {
	cases := []struct {
		name string
		d    Decision
		want string
	}{
		{"solo microsoft", Decision{Microsoft: true}, CodeOAuthOnlyMicrosoft},
		{"solo google", Decision{Google: true}, CodeOAuthOnlyGoogle},
		{"solo steam", Decision{Steam: true}, CodeOAuthOnlySteam},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, providers := Steering(tc.d)
			if code != tc.want {
				t.Fatalf("code = %q, esperado %q", code, tc.want)
			}
			if len(providers) != 1 {
				t.Fatalf("providers = %v, esperado uno solo", providers)
			}
		})
	}
}

func TestSteering_MultipleProvidersGenericCode(t *testing.T) {
	code, providers := Steering(Decision{Microsoft: true, Steam: true})

	if code != CodeOAuthOnly {
		t.Fatalf("code = %q, esperado %q", code, CodeOAuthOnly)
	}
	if len(providers) != 2 || providers[0] != provider.Microsoft || providers[1] != provider.Steam {
		t.Fatalf("providers = %v, esperado [microsoft steam] en orden canónico", providers)
	}
}

func TestSteering_ZeroProvidersIsDefined(t *testing.T) {
	// Lockout por política: ningún método visible. Código genérico con lista
	// vacía, nunca un pánico ni un error.
	code, providers := Steering(Decision{})

	if code != CodeOAuthOnly {
		t.Fatalf("code = %q, esperado %q", code, CodeOAuthOnly)
	}
	if len(providers) != 0 {
		t.Fatalf("providers = %v, esperado lista vacía", providers)
	}
}
