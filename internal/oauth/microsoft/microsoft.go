// Package microsoft implementa el provider OIDC de Microsoft Entra ID
// (endpoint v2.0, tenant configurable; "common" acepta cualquier tenant).
package microsoft

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
	"github.com/dropDatabas3/gatekeep/internal/oauth/oidc"
)

// Config contiene las credenciales de la app registrada en Entra.
type Config struct {
	ClientID     string
	ClientSecret string
	Tenant       string // "common", "organizations" o un tenant ID
	RedirectURL  string
}

// Provider implementa oauth.Provider contra login.microsoftonline.com.
type Provider struct {
	client *oidc.Client
}

// New crea el provider de Microsoft.
func New(cfg Config) *Provider {
	tenant := cfg.Tenant
	if tenant == "" {
		tenant = "common"
	}
	c := oidc.New(
		fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0/.well-known/openid-configuration", tenant),
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.RedirectURL,
		[]string{"openid", "profile", "email"},
	)
	// Con tenant "common"/"organizations" el discovery publica un issuer
	// template con {tenantid}; el iss real trae el GUID del tenant.
	c.IssuerOK = func(iss string) bool {
		return strings.HasPrefix(iss, "https://login.microsoftonline.com/") &&
			strings.HasSuffix(strings.TrimSuffix(iss, "/"), "/v2.0")
	}
	return &Provider{client: c}
}

func (p *Provider) ID() provider.ID { return provider.Microsoft }

func (p *Provider) AuthorizeURL(ctx context.Context, state, nonce string) (string, error) {
	return p.client.AuthURL(ctx, state, nonce)
}

func (p *Provider) Complete(ctx context.Context, query url.Values, expectedNonce string) (*oauth.Profile, error) {
	if e := query.Get("error"); e != "" {
		return nil, fmt.Errorf("provider error: %s (%s)", e, query.Get("error_description"))
	}
	code := query.Get("code")
	if code == "" {
		return nil, errors.New("missing code")
	}
	tr, err := p.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	claims, err := p.client.VerifyIDToken(ctx, tr.IDToken, expectedNonce)
	if err != nil {
		return nil, err
	}

	prof := &oauth.Profile{
		AccountID:     claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
		RawIDToken:    tr.IDToken,
	}
	// Entra suele omitir email en cuentas sin mailbox; preferred_username
	// y upn sirven de fallback para el label.
	if prof.Email == "" {
		for _, k := range []string{"preferred_username", "upn", "unique_name"} {
			if v, _ := claims.Raw[k].(string); v != "" {
				prof.Email = v
				break
			}
		}
	}
	return prof, nil
}
