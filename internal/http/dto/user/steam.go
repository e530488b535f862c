package user

// SteamProfileResponse es el perfil público resuelto vía Web API.
type SteamProfileResponse struct {
	PersonaName string `json:"personaname"`
	Avatar      string `json:"avatar,omitempty"`
	ProfileURL  string `json:"profileurl,omitempty"`
}

// SteamGameResponse es un juego de las últimas dos semanas. Los playtime
// vienen en minutos, como los reporta Steam.
type SteamGameResponse struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	PlaytimeForever int    `json:"playtime_forever"`
}

// SteamSummaryResponse es la respuesta de GET /v1/user/self/steam/summary.
// Linked false significa que el usuario no tiene cuenta Steam vinculada;
// el resto de los campos solo viajan cuando está vinculada.
type SteamSummaryResponse struct {
	Linked  bool                  `json:"linked"`
	SteamID string                `json:"steamid,omitempty"`
	Profile *SteamProfileResponse `json:"profile,omitempty"`
	Recent  []SteamGameResponse   `json:"recent,omitempty"`
}

// SteamFriendResponse es una fila de GET /v1/user/self/steam/friends.
// Name, Avatar y ProfileURL solo viajan con withProfiles=1.
type SteamFriendResponse struct {
	SteamID     string `json:"steamid"`
	Name        string `json:"name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	ProfileURL  string `json:"profileurl,omitempty"`
	FriendSince int64  `json:"friend_since"`
}

// SteamFriendsResponse es la respuesta de GET /v1/user/self/steam/friends.
type SteamFriendsResponse struct {
	Linked  bool                  `json:"linked"`
	Friends []SteamFriendResponse `json:"friends"`
}
