// Package social implementa los flujos OAuth/OpenID de sign-in y vinculación.
package social

import (
	"context"
	"errors"
	"net/url"

	auth "github.com/dropDatabas3/gatekeep/internal/http/services/auth"
)

// StartService arma la redirección al provider externo.
type StartService interface {
	// Start retorna la URL de autorización del provider con el state firmado.
	// linkUserID != "" inicia el flujo en modo vinculación.
	Start(ctx context.Context, providerName, linkUserID string) (string, error)
}

// CallbackService procesa el retorno del provider.
type CallbackService interface {
	Callback(ctx context.Context, providerName string, query url.Values) (*CallbackResult, error)
}

// CallbackResult es el resultado de un callback exitoso.
type CallbackResult struct {
	// Identity es la identidad a la que emitir sesión (modo sign-in, o el
	// dueño de la cuenta en modo link).
	Identity *auth.Identity
	// Linked indica que fue una vinculación, no un sign-in.
	Linked bool
	// Provisioned indica que el usuario fue creado en este callback.
	Provisioned bool
}

// Errores del flujo social
var (
	ErrUnknownProvider    = errors.New("unknown or disabled provider")
	ErrProviderNotAllowed = errors.New("provider not allowed for this user")
	ErrAccountTaken       = errors.New("external account already linked to another user")
	ErrProviderLinked     = errors.New("user already has this provider linked")
)
