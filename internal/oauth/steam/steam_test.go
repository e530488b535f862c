package steam

import (
	"context"
	"net/url"
	"strings"
	"testing"
)

func TestAuthorizeURL_CarriesStateAndNonce(t *testing.T) {
	p := New(Config{RedirectURL: "https://app.example.com/v1/auth/social/steam/callback"})

	raw, err := p.AuthorizeURL(context.Background(), "estado123", "nonce456")
	if err != nil {
		t.Fatalf("AuthorizeURL err: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("URL inválida: %v", err)
	}
	if !strings.HasPrefix(raw, openidEndpoint) {
		t.Fatalf("debería apuntar al endpoint openid de steam, got %s", raw)
	}

	q := u.Query()
	if q.Get("openid.mode") != "checkid_setup" {
		t.Fatalf("openid.mode = %q", q.Get("openid.mode"))
	}
	if q.Get("openid.realm") != "https://app.example.com" {
		t.Fatalf("realm derivado = %q", q.Get("openid.realm"))
	}

	// state y nonce viajan dentro del return_to
	ret, err := url.Parse(q.Get("openid.return_to"))
	if err != nil {
		t.Fatalf("return_to inválido: %v", err)
	}
	if ret.Query().Get("state") != "estado123" || ret.Query().Get("nonce") != "nonce456" {
		t.Fatalf("return_to sin state/nonce: %s", ret.String())
	}
}

func TestAuthorizeURL_ExplicitRealm(t *testing.T) {
	p := New(Config{
		RedirectURL: "https://app.example.com/callback",
		Realm:       "https://otro.example.com",
	})
	raw, err := p.AuthorizeURL(context.Background(), "s", "n")
	if err != nil {
		t.Fatalf("AuthorizeURL err: %v", err)
	}
	u, _ := url.Parse(raw)
	if got := u.Query().Get("openid.realm"); got != "https://otro.example.com" {
		t.Fatalf("realm = %q, esperado el configurado", got)
	}
}

func TestClaimedID_Parsing(t *testing.T) {
	cases := []struct {
		claimed string
		want    string
	}{
		{"https://steamcommunity.com/openid/id/76561198000000001", "76561198000000001"},
		{"http://steamcommunity.com/openid/id/76561198000000001", "76561198000000001"},
		{"https://steamcommunity.com/openid/id/123", ""},
		{"https://evil.example.com/openid/id/76561198000000001", ""},
		{"https://steamcommunity.com/openid/id/76561198000000001/extra", ""},
		{"", ""},
	}
	for _, tc := range cases {
		m := claimedIDRe.FindStringSubmatch(tc.claimed)
		got := ""
		if m != nil {
			got = m[1]
		}
		if got != tc.want {
			t.Fatalf("claimed_id %q: steamid = %q, esperado %q", tc.claimed, got, tc.want)
		}
	}
}

func TestComplete_RejectsBeforeNetwork(t *testing.T) {
	p := New(Config{RedirectURL: "https://app.example.com/callback"})

	// Modo incorrecto
	q := url.Values{"openid.mode": {"cancel"}}
	if _, err := p.Complete(context.Background(), q, ""); err == nil {
		t.Fatal("mode cancel debería rechazarse")
	}

	// Nonce que no coincide
	q = url.Values{
		"openid.mode":       {"id_res"},
		"nonce":             {"otro"},
		"openid.claimed_id": {"https://steamcommunity.com/openid/id/76561198000000001"},
	}
	if _, err := p.Complete(context.Background(), q, "esperado"); err == nil {
		t.Fatal("nonce ajeno debería rechazarse")
	}

	// claimed_id fuera de steamcommunity
	q = url.Values{
		"openid.mode":       {"id_res"},
		"openid.claimed_id": {"https://evil.example.com/openid/id/76561198000000001"},
	}
	if _, err := p.Complete(context.Background(), q, ""); err == nil {
		t.Fatal("claimed_id ajeno debería rechazarse")
	}
}
