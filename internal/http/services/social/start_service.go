package social

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/cache"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// StartDeps contiene las dependencias para el start service.
type StartDeps struct {
	Providers *oauth.Registry
	Signer    *StateSigner
	Cache     cache.Client
}

type startService struct {
	deps StartDeps
}

// NewStartService crea un nuevo servicio de arranque de flujo social.
func NewStartService(deps StartDeps) StartService {
	return &startService{deps: deps}
}

// nonceKey construye la clave de cache para el guard de replay.
func nonceKey(nonce string) string {
	return "social:nonce:" + nonce
}

func (s *startService) Start(ctx context.Context, providerName, linkUserID string) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("social.start"),
		logger.Provider(providerName),
	)

	id := provider.ID(providerName)
	p, ok := s.deps.Providers.Get(id)
	if !ok {
		return "", ErrUnknownProvider
	}

	mode := ModeSignIn
	if linkUserID != "" {
		mode = ModeLink
	}

	nonce := NewNonce()
	state, err := s.deps.Signer.SignState(StateClaims{
		Provider:   providerName,
		Mode:       mode,
		LinkUserID: linkUserID,
		Nonce:      nonce,
	})
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}

	// Guard de replay: el nonce vive lo mismo que el state y se consume
	// una sola vez en el callback.
	if err := s.deps.Cache.Set(ctx, nonceKey(nonce), "1", StateTTL); err != nil {
		return "", fmt.Errorf("store nonce: %w", err)
	}

	u, err := p.AuthorizeURL(ctx, state, nonce)
	if err != nil {
		return "", fmt.Errorf("authorize url: %w", err)
	}

	log.Info("social flow started", logger.String("mode", mode))
	return u, nil
}
