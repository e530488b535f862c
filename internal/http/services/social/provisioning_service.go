package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
)

// maxUsernameAttempts limita los reintentos por colisión de username.
const maxUsernameAttempts = 5

// usernameFromProfile deriva un username base del perfil externo:
// local-part del email, si no el nombre, si no provider+id.
func usernameFromProfile(id provider.ID, p *oauth.Profile) string {
	if p.Email != "" {
		if at := strings.IndexByte(p.Email, '@'); at > 0 {
			return sanitizeUsername(p.Email[:at])
		}
	}
	if p.Name != "" {
		return sanitizeUsername(p.Name)
	}
	return string(id) + "_" + p.AccountID
}

// sanitizeUsername reduce el candidato a [a-z0-9._-].
func sanitizeUsername(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('.')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

// provision crea el usuario local en el primer sign-in social.
// Rol VIEWER, sin password local; la cuenta externa queda vinculada en la
// misma operación.
func (s *callbackService) provision(ctx context.Context, id provider.ID, profile *oauth.Profile) (*repository.User, error) {
	base := usernameFromProfile(id, profile)

	var email *string
	if profile.Email != "" {
		e := profile.Email
		email = &e
	}

	var user *repository.User
	var err error
	for i := 0; i < maxUsernameAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s%d", base, i+1)
		}
		user, err = s.deps.Users.Create(ctx, repository.CreateUserInput{
			Username:     candidate,
			Email:        email,
			Role:         repository.RoleViewer,
			ProfileImage: profile.Picture,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
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
		// Sin la cuenta vinculada el usuario recién creado no tiene ningún
		// método de acceso; se deshace el alta antes de propagar el error.
		if delErr := s.deps.Users.Delete(ctx, user.ID); delErr != nil {
			logger.From(ctx).Warn("provisioned user cleanup failed",
				logger.Layer("service"),
				logger.Component("social.callback"),
				logger.UserID(user.ID),
				logger.Err(delErr),
			)
		}
		return nil, fmt.Errorf("link provisioned account: %w", err)
	}
	return user, nil
}
