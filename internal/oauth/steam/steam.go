// Package steam implementa el provider de Steam sobre OpenID 2.0.
//
// Steam no es OIDC: no emite ID token ni soporta nonce propio; la
// verificación es el check_authentication clásico contra steamcommunity.com
// y la identidad es el steamid64 embebido en claimed_id. El nonce viaja en
// el return_to junto al state y se valida localmente.
package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
)

const (
	openidEndpoint = "https://steamcommunity.com/openid/login"
	openidNS       = "http://specs.openid.net/auth/2.0"
	identifierSel  = "http://specs.openid.net/auth/2.0/identifier_select"
)

var claimedIDRe = regexp.MustCompile(`^https?://steamcommunity\.com/openid/id/(\d{17})$`)

// Config contiene el return URL y la API key opcional de Steam Web API.
type Config struct {
	// RedirectURL es el callback local (return_to).
	RedirectURL string
	// APIKey habilita GetPlayerSummaries para persona name y avatar.
	// Vacío: el perfil queda con el steamid64 como único dato.
	APIKey string
	// Realm es el origin que Steam muestra al usuario. Vacío: se deriva
	// del RedirectURL.
	Realm string
}

// Provider implementa oauth.Provider sobre el flujo OpenID 2.0 de Steam.
type Provider struct {
	cfg  Config
	http *http.Client
	api  *WebAPI
}

// New crea el provider de Steam.
func New(cfg Config) *Provider {
	return &Provider{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
		api:  NewWebAPI(cfg.APIKey),
	}
}

func (p *Provider) ID() provider.ID { return provider.Steam }

func (p *Provider) realm() string {
	if p.cfg.Realm != "" {
		return p.cfg.Realm
	}
	u, err := url.Parse(p.cfg.RedirectURL)
	if err != nil {
		return p.cfg.RedirectURL
	}
	return u.Scheme + "://" + u.Host
}

// AuthorizeURL arma el checkid_setup. state y nonce van en el return_to
// porque OpenID 2.0 no tiene canal propio para ellos.
func (p *Provider) AuthorizeURL(_ context.Context, state, nonce string) (string, error) {
	ret, err := url.Parse(p.cfg.RedirectURL)
	if err != nil {
		return "", err
	}
	rq := ret.Query()
	rq.Set("state", state)
	rq.Set("nonce", nonce)
	ret.RawQuery = rq.Encode()

	q := url.Values{}
	q.Set("openid.ns", openidNS)
	q.Set("openid.mode", "checkid_setup")
	q.Set("openid.return_to", ret.String())
	q.Set("openid.realm", p.realm())
	q.Set("openid.identity", identifierSel)
	q.Set("openid.claimed_id", identifierSel)
	return openidEndpoint + "?" + q.Encode(), nil
}

// Complete verifica la assertion con check_authentication y resuelve el
// perfil. El expectedNonce se compara contra el nonce que volvió en el
// return_to (ya extraído al query por el callback).
func (p *Provider) Complete(ctx context.Context, query url.Values, expectedNonce string) (*oauth.Profile, error) {
	if query.Get("openid.mode") != "id_res" {
		return nil, fmt.Errorf("unexpected openid.mode: %q", query.Get("openid.mode"))
	}
	if expectedNonce != "" && query.Get("nonce") != expectedNonce {
		return nil, errors.New("bad nonce")
	}

	m := claimedIDRe.FindStringSubmatch(query.Get("openid.claimed_id"))
	if m == nil {
		return nil, errors.New("bad claimed_id")
	}
	steamID := m[1]

	ok, err := p.checkAuthentication(ctx, query)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("assertion rejected by steam")
	}

	prof := &oauth.Profile{AccountID: steamID}
	if p.cfg.APIKey != "" {
		// Best effort: si la Web API falla igual dejamos entrar con el id.
		if player, err := p.api.PlayerSummary(ctx, steamID); err == nil {
			prof.Name = player.PersonaName
			prof.Picture = player.AvatarFull
		}
	}
	return prof, nil
}

// checkAuthentication reenvía los params firmados con mode=check_authentication.
func (p *Provider) checkAuthentication(ctx context.Context, query url.Values) (bool, error) {
	form := url.Values{}
	for k, vs := range query {
		if strings.HasPrefix(k, "openid.") && len(vs) > 0 {
			form.Set(k, vs[0])
		}
	}
	form.Set("openid.mode", "check_authentication")

	req, _ := http.NewRequestWithContext(ctx, "POST", openidEndpoint, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := p.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return false, fmt.Errorf("steam openid http %d", resp.StatusCode)
	}

	// Respuesta key-value por línea; buscamos is_valid:true.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(body), "\n") {
		if strings.TrimSpace(line) == "is_valid:true" {
			return true, nil
		}
	}
	return false, nil
}

// API expone el cliente de Steam Web API del provider.
func (p *Provider) API() *WebAPI { return p.api }
