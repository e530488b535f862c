package user

import (
	"context"
	"sort"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/user"
	"github.com/dropDatabas3/gatekeep/internal/oauth/steam"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// recentGamesCount acota cuántos juegos recientes pide el summary.
const recentGamesCount = 5

// defaultFriendsLimit es el tope de amigos cuando el request no manda limit.
const defaultFriendsLimit = 100

// SteamAPI es el subset de la Steam Web API que consume el servicio.
// *steam.WebAPI lo implementa.
type SteamAPI interface {
	PlayerSummary(ctx context.Context, steamID string) (*steam.Player, error)
	PlayerSummaries(ctx context.Context, steamIDs []string) ([]steam.Player, error)
	RecentlyPlayed(ctx context.Context, steamID string, count int) ([]steam.PlayedGame, error)
	FriendList(ctx context.Context, steamID string) ([]steam.Friend, error)
}

// SteamDeps contiene las dependencias para el steam service.
type SteamDeps struct {
	Accounts repository.AccountRepository
	// API nil significa que no hay STEAM_API_KEY configurada.
	API SteamAPI
}

type steamService struct {
	deps SteamDeps
}

// NewSteamService crea el servicio de datos de Steam del usuario.
func NewSteamService(deps SteamDeps) SteamService {
	return &steamService{deps: deps}
}

// steamID resuelve el steamid64 de la cuenta Steam vinculada del usuario.
// Retorna "" sin error cuando no hay cuenta Steam.
func (s *steamService) steamID(ctx context.Context, userID string) (string, error) {
	accs, err := s.deps.Accounts.ListByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, a := range accs {
		if a.Provider == provider.Steam {
			return a.ProviderAccountID, nil
		}
	}
	return "", nil
}

func (s *steamService) Summary(ctx context.Context, userID string) (*dto.SteamSummaryResponse, error) {
	steamID, err := s.steamID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if steamID == "" {
		return &dto.SteamSummaryResponse{Linked: false}, nil
	}
	if s.deps.API == nil {
		return nil, ErrSteamUnavailable
	}

	player, err := s.deps.API.PlayerSummary(ctx, steamID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SteamSummaryResponse{
		Linked:  true,
		SteamID: steamID,
		Profile: &dto.SteamProfileResponse{
			PersonaName: player.PersonaName,
			Avatar:      player.AvatarFull,
			ProfileURL:  player.ProfileURL,
		},
	}

	// Los juegos recientes son decorativos: si fallan, el summary sale igual.
	games, err := s.deps.API.RecentlyPlayed(ctx, steamID, recentGamesCount)
	if err != nil {
		logger.From(ctx).Warn("steam recently played lookup failed",
			logger.Layer("service"),
			logger.Component("user.steam"),
			logger.UserID(userID),
			logger.Err(err),
		)
		return resp, nil
	}
	resp.Recent = make([]dto.SteamGameResponse, 0, len(games))
	for _, g := range games {
		resp.Recent = append(resp.Recent, dto.SteamGameResponse{
			AppID:           g.AppID,
			Name:            g.Name,
			Playtime2Weeks:  g.Playtime2Weeks,
			PlaytimeForever: g.PlaytimeForever,
		})
	}
	return resp, nil
}

func (s *steamService) Friends(ctx context.Context, userID string, limit int, withProfiles bool) (*dto.SteamFriendsResponse, error) {
	steamID, err := s.steamID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if steamID == "" {
		return &dto.SteamFriendsResponse{Linked: false, Friends: []dto.SteamFriendResponse{}}, nil
	}
	if s.deps.API == nil {
		return nil, ErrSteamUnavailable
	}
	if limit <= 0 {
		limit = defaultFriendsLimit
	}

	edges, err := s.deps.API.FriendList(ctx, steamID)
	if err != nil {
		return nil, err
	}

	// Amistades más nuevas primero, tope en limit.
	sort.Slice(edges, func(i, j int) bool { return edges[i].FriendSince > edges[j].FriendSince })
	if len(edges) > limit {
		edges = edges[:limit]
	}

	friends := make([]dto.SteamFriendResponse, 0, len(edges))
	if !withProfiles {
		for _, e := range edges {
			friends = append(friends, dto.SteamFriendResponse{
				SteamID:     e.SteamID,
				FriendSince: e.FriendSince,
			})
		}
		return &dto.SteamFriendsResponse{Linked: true, Friends: friends}, nil
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.SteamID)
	}
	players, err := s.deps.API.PlayerSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]steam.Player, len(players))
	for _, p := range players {
		byID[p.SteamID] = p
	}
	for _, e := range edges {
		f := dto.SteamFriendResponse{SteamID: e.SteamID, FriendSince: e.FriendSince}
		if p, ok := byID[e.SteamID]; ok {
			f.Name = p.PersonaName
			f.Avatar = p.AvatarFull
			f.ProfileURL = p.ProfileURL
		}
		friends = append(friends, f)
	}
	return &dto.SteamFriendsResponse{Linked: true, Friends: friends}, nil
}
