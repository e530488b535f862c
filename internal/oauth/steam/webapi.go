package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultWebAPIBase = "https://api.steampowered.com"

// maxSummaryIDs es el tope de steamids por llamada a GetPlayerSummaries.
const maxSummaryIDs = 100

// ErrUpstream marca fallas de la Steam Web API (red, HTTP no-2xx, JSON
// inválido). Los callers la distinguen de errores propios con errors.Is.
var ErrUpstream = errors.New("steam web api error")

// Player es el subset de GetPlayerSummaries que exponemos.
type Player struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	AvatarFull  string `json:"avatarfull"`
	ProfileURL  string `json:"profileurl"`
}

// PlayedGame es una entrada de GetRecentlyPlayedGames (últimas dos semanas).
type PlayedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
}

// Friend es una arista de GetFriendList. FriendSince es epoch seconds.
type Friend struct {
	SteamID     string `json:"steamid"`
	FriendSince int64  `json:"friend_since"`
}

// WebAPI es un cliente mínimo de la Steam Web API pública.
type WebAPI struct {
	key  string
	base string
	http *http.Client
}

// NewWebAPI crea el cliente con la API key dada.
func NewWebAPI(key string) *WebAPI {
	return &WebAPI{
		key:  key,
		base: defaultWebAPIBase,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// do arma la URL con la key y ejecuta el GET. El caller es dueño del body.
func (a *WebAPI) do(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	params.Set("key", a.key)
	req, err := http.NewRequestWithContext(ctx, "GET", a.base+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return resp, nil
}

// get ejecuta el GET y decodifica el body JSON en out.
func (a *WebAPI) get(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := a.do(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: http %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// PlayerSummaries resuelve perfiles en lotes de hasta maxSummaryIDs.
// El orden de salida sigue al de la API, no al de la entrada.
func (a *WebAPI) PlayerSummaries(ctx context.Context, steamIDs []string) ([]Player, error) {
	out := make([]Player, 0, len(steamIDs))
	for start := 0; start < len(steamIDs); start += maxSummaryIDs {
		end := start + maxSummaryIDs
		if end > len(steamIDs) {
			end = len(steamIDs)
		}
		var body struct {
			Response struct {
				Players []Player `json:"players"`
			} `json:"response"`
		}
		params := url.Values{"steamids": {strings.Join(steamIDs[start:end], ",")}}
		if err := a.get(ctx, "/ISteamUser/GetPlayerSummaries/v0002/", params, &body); err != nil {
			return nil, err
		}
		out = append(out, body.Response.Players...)
	}
	return out, nil
}

// PlayerSummary resuelve el perfil de un único steamid.
func (a *WebAPI) PlayerSummary(ctx context.Context, steamID string) (*Player, error) {
	players, err := a.PlayerSummaries(ctx, []string{steamID})
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: player %s not found", ErrUpstream, steamID)
	}
	return &players[0], nil
}

// RecentlyPlayed lista los juegos de las últimas dos semanas, hasta count
// (0 = sin tope).
func (a *WebAPI) RecentlyPlayed(ctx context.Context, steamID string, count int) ([]PlayedGame, error) {
	params := url.Values{"steamid": {steamID}}
	if count > 0 {
		params.Set("count", fmt.Sprintf("%d", count))
	}
	var body struct {
		Response struct {
			Games []PlayedGame `json:"games"`
		} `json:"response"`
	}
	if err := a.get(ctx, "/IPlayerService/GetRecentlyPlayedGames/v0001/", params, &body); err != nil {
		return nil, err
	}
	return body.Response.Games, nil
}

// FriendList lista las amistades del perfil. Steam responde 401 cuando la
// lista es privada; eso se reporta como lista vacía, no como error.
func (a *WebAPI) FriendList(ctx context.Context, steamID string) ([]Friend, error) {
	params := url.Values{"steamid": {steamID}, "relationship": {"friend"}}
	resp, err := a.do(ctx, "/ISteamUser/GetFriendList/v0001/", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return []Friend{}, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: http %d", ErrUpstream, resp.StatusCode)
	}
	var body struct {
		FriendsList struct {
			Friends []Friend `json:"friends"`
		} `json:"friendslist"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return body.FriendsList.Friends, nil
}
