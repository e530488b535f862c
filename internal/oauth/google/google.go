// Package google implementa el provider OIDC de Google Identity.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
	"github.com/dropDatabas3/gatekeep/internal/oauth/oidc"
)

// Config contiene las credenciales del OAuth client de Google Cloud.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Provider implementa oauth.Provider contra accounts.google.com.
type Provider struct {
	client *oidc.Client
}

// New crea el provider de Google.
func New(cfg Config) *Provider {
	c := oidc.New(
		"https://accounts.google.com/.well-known/openid-configuration",
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.RedirectURL,
		[]string{"openid", "profile", "email"},
	)
	c.IssuerOK = func(iss string) bool {
		return iss == "https://accounts.google.com" || iss == "accounts.google.com"
	}
	return &Provider{client: c}
}

func (p *Provider) ID() provider.ID { return provider.Google }

func (p *Provider) AuthorizeURL(ctx context.Context, state, nonce string) (string, error) {
	return p.client.AuthURL(ctx, state, nonce)
}

func (p *Provider) Complete(ctx context.Context, query url.Values, expectedNonce string) (*oauth.Profile, error) {
	if e := query.Get("error"); e != "" {
		return nil, fmt.Errorf("provider error: %s", e)
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
	return &oauth.Profile{
		AccountID:     claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
		RawIDToken:    tr.IDToken,
	}, nil
}
