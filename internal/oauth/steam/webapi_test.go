package steam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testWebAPI(srv *httptest.Server) *WebAPI {
	return &WebAPI{key: "test-key", base: srv.URL, http: srv.Client()}
}

func TestWebAPI_PlayerSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ISteamUser/GetPlayerSummaries/v0002/" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("key = %q", r.URL.Query().Get("key"))
		}
		fmt.Fprint(w, `{"response":{"players":[{"steamid":"76561198000000001","personaname":"gordon","avatarfull":"https://a/full.jpg","profileurl":"https://steamcommunity.com/id/gordon/"}]}}`)
	}))
	defer srv.Close()

	p, err := testWebAPI(srv).PlayerSummary(context.Background(), "76561198000000001")
	if err != nil {
		t.Fatalf("PlayerSummary: %v", err)
	}
	if p.PersonaName != "gordon" || p.AvatarFull != "https://a/full.jpg" {
		t.Fatalf("player = %+v", p)
	}
}

func TestWebAPI_PlayerSummariesChunks(t *testing.T) {
	var batches []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("steamids"), ",")
		batches = append(batches, len(ids))
		var sb strings.Builder
		sb.WriteString(`{"response":{"players":[`)
		for i, id := range ids {
			if i > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, `{"steamid":%q}`, id)
		}
		sb.WriteString(`]}}`)
		fmt.Fprint(w, sb.String())
	}))
	defer srv.Close()

	ids := make([]string, 150)
	for i := range ids {
		ids[i] = fmt.Sprintf("7656119800%07d", i)
	}
	players, err := testWebAPI(srv).PlayerSummaries(context.Background(), ids)
	if err != nil {
		t.Fatalf("PlayerSummaries: %v", err)
	}
	if len(players) != 150 {
		t.Fatalf("players = %d, esperado 150", len(players))
	}
	if len(batches) != 2 || batches[0] != 100 || batches[1] != 50 {
		t.Fatalf("batches = %v, esperado [100 50]", batches)
	}
}

func TestWebAPI_FriendListPrivateProfile(t *testing.T) {
	// Steam responde 401 cuando la lista de amigos es privada.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	friends, err := testWebAPI(srv).FriendList(context.Background(), "76561198000000001")
	if err != nil {
		t.Fatalf("un perfil privado no es un error: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("friends = %v, esperado vacío", friends)
	}
}

func TestWebAPI_FriendList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("relationship"); got != "friend" {
			t.Fatalf("relationship = %q", got)
		}
		fmt.Fprint(w, `{"friendslist":{"friends":[{"steamid":"76561198000000002","friend_since":1600000000},{"steamid":"76561198000000003","friend_since":1700000000}]}}`)
	}))
	defer srv.Close()

	friends, err := testWebAPI(srv).FriendList(context.Background(), "76561198000000001")
	if err != nil {
		t.Fatalf("FriendList: %v", err)
	}
	if len(friends) != 2 || friends[1].FriendSince != 1700000000 {
		t.Fatalf("friends = %+v", friends)
	}
}

func TestWebAPI_UpstreamFailureWrapsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testWebAPI(srv).RecentlyPlayed(context.Background(), "76561198000000001", 5)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, esperado ErrUpstream", err)
	}
}
