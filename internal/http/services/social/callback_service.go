package social

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/cache"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	auth "github.com/dropDatabas3/gatekeep/internal/http/services/auth"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// CallbackDeps contiene las dependencias para el callback service.
type CallbackDeps struct {
	Providers *oauth.Registry
	Signer    *StateSigner
	Cache     cache.Client
	Users     repository.UserRepository
	Accounts  repository.AccountRepository
	Resolver  *visibility.Resolver
}

type callbackService struct {
	deps CallbackDeps
}

// NewCallbackService crea un nuevo servicio de callback social.
func NewCallbackService(deps CallbackDeps) CallbackService {
	return &callbackService{deps: deps}
}

func (s *callbackService) Callback(ctx context.Context, providerName string, query url.Values) (*CallbackResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("social.callback"),
		logger.Provider(providerName),
	)

	id := provider.ID(providerName)
	p, ok := s.deps.Providers.Get(id)
	if !ok {
		return nil, ErrUnknownProvider
	}

	// Paso 1: Validar state firmado.
	claims, err := s.deps.Signer.ParseState(query.Get("state"))
	if err != nil {
		return nil, err
	}
	if claims.Provider != providerName {
		return nil, ErrStateProvider
	}

	// Paso 2: Consumir el nonce (un solo uso). Si no está, el flujo expiró
	// o el callback ya fue procesado.
	if _, err := s.deps.Cache.Get(ctx, nonceKey(claims.Nonce)); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			log.Warn("nonce missing or replayed")
			return nil, ErrStateInvalid
		}
		return nil, fmt.Errorf("nonce lookup: %w", err)
	}
	if err := s.deps.Cache.Delete(ctx, nonceKey(claims.Nonce)); err != nil {
		return nil, fmt.Errorf("nonce consume: %w", err)
	}

	// Paso 3: Completar handshake con el provider y verificar el perfil.
	profile, err := p.Complete(ctx, query, claims.Nonce)
	if err != nil {
		log.Warn("provider handshake failed", logger.Err(err))
		return nil, fmt.Errorf("provider handshake: %w", err)
	}

	log = log.With(logger.AccountID(profile.AccountID))

	if claims.Mode == ModeLink {
		return s.link(ctx, log, id, claims.LinkUserID, profile)
	}
	return s.signIn(ctx, log, id, profile)
}

// signIn resuelve el perfil externo a un usuario local, aprovisionando uno
// nuevo en el primer login.
func (s *callbackService) signIn(ctx context.Context, log *zap.Logger, id provider.ID, profile *oauth.Profile) (*CallbackResult, error) {
	acc, err := s.deps.Accounts.GetByProviderAccount(ctx, id, profile.AccountID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("account lookup: %w", err)
	}

	if acc != nil {
		user, err := s.deps.Users.GetByID(ctx, acc.UserID)
		if err != nil {
			return nil, fmt.Errorf("user lookup: %w", err)
		}

		// La política del usuario puede haber cerrado este provider después
		// de la vinculación.
		d, err := s.deps.Resolver.ForUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("visibility resolution: %w", err)
		}
		if !d.OAuthVisible(id) {
			log.Info("provider not visible for user, sign-in refused", logger.UserID(user.ID))
			return nil, ErrProviderNotAllowed
		}

		log.Info("social sign-in succeeded", logger.UserID(user.ID))
		return &CallbackResult{Identity: identityOf(user)}, nil
	}

	user, err := s.provision(ctx, id, profile)
	if err != nil {
		return nil, err
	}
	log.Info("user provisioned from social sign-in", logger.UserID(user.ID))
	return &CallbackResult{Identity: identityOf(user), Provisioned: true}, nil
}

// link vincula la cuenta externa al usuario autenticado que inició el flujo.
func (s *callbackService) link(ctx context.Context, log *zap.Logger, id provider.ID, userID string, profile *oauth.Profile) (*CallbackResult, error) {
	if userID == "" {
		return nil, ErrStateInvalid
	}

	user, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	// Rechazos explícitos antes de intentar el insert para mapear el
	// conflicto a un error específico.
	if existing, err := s.deps.Accounts.GetByProviderAccount(ctx, id, profile.AccountID); err == nil {
		if existing.UserID == user.ID {
			return nil, ErrProviderLinked
		}
		return nil, ErrAccountTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("account lookup: %w", err)
	}

	var idTok *string
	if profile.RawIDToken != "" {
		idTok = &profile.RawIDToken
	}
	if _, err := s.deps.Accounts.Link(ctx, repository.LinkAccountInput{
		UserID:            user.ID,
		Provider:          id,
		ProviderAccountID: profile.AccountID,
		Label:             profile.Label(),
		Picture:           profile.Picture,
		IDToken:           idTok,
	}); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrProviderLinked
		}
		return nil, fmt.Errorf("link account: %w", err)
	}

	log.Info("account linked", logger.UserID(user.ID))
	return &CallbackResult{Identity: identityOf(user), Linked: true}, nil
}

func identityOf(u *repository.User) *auth.Identity {
	email := ""
	if u.Email != nil {
		email = *u.Email
	}
	return &auth.Identity{
		ID:           u.ID,
		Username:     u.Username,
		Email:        email,
		Role:         string(u.Role),
		Theme:        string(u.Theme),
		ProfileImage: u.ProfileImage,
	}
}
