package repository

import (
	"context"
	"time"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
)

// Account representa una cuenta OAuth vinculada a un usuario.
// Solo providers OAuth viven acá: la credencial local (password) no se
// modela como Account sino como User.PasswordHash.
//
// Invariantes (respaldadas por unique indexes en el schema):
//   - (provider, provider_account_id) es único en todo el sistema.
//   - (user_id, provider) es único: un usuario no puede vincular dos veces
//     el mismo provider.
type Account struct {
	ID                string
	UserID            string
	Provider          provider.ID
	ProviderAccountID string
	Label             string  // Cacheado del ID token (email/username del provider)
	Picture           string  // Avatar URL cacheado del ID token
	IDToken           *string // Token de identidad crudo, para re-derivar label/picture
	CreatedAt         time.Time
}

// LinkAccountInput contiene los datos para vincular una cuenta.
type LinkAccountInput struct {
	UserID            string
	Provider          provider.ID
	ProviderAccountID string
	Label             string
	Picture           string
	IDToken           *string
}

// UnlinkLocksOut es la precondición de Unlink: sin password local y con una
// sola cuenta vinculada, el unlink dejaría al usuario sin forma de entrar.
// Toda implementación de AccountRepository la evalúa dentro de su unidad
// atómica antes de borrar.
func UnlinkLocksOut(hasPassword bool, linkedAccounts int) bool {
	return !hasPassword && linkedAccounts <= 1
}

// AccountRepository define operaciones sobre cuentas vinculadas.
type AccountRepository interface {
	// ListByUserID lista las cuentas de un usuario, ordenadas por provider.
	ListByUserID(ctx context.Context, userID string) ([]Account, error)

	// LinkedProviders reduce las cuentas de un usuario a flags de presencia
	// por provider OAuth. Lectura sin efectos secundarios; un error del store
	// se propaga tal cual (el caller decide fail-open vs fail-closed).
	LinkedProviders(ctx context.Context, userID string) (map[provider.ID]bool, error)

	// GetByProviderAccount busca una cuenta por (provider, provider_account_id).
	// Retorna ErrNotFound si no existe.
	GetByProviderAccount(ctx context.Context, p provider.ID, providerAccountID string) (*Account, error)

	// GetByID busca una cuenta por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, accountID string) (*Account, error)

	// Link vincula una cuenta a un usuario.
	// Retorna ErrConflict si (provider, provider_account_id) ya existe o si el
	// usuario ya tiene ese provider vinculado.
	Link(ctx context.Context, input LinkAccountInput) (*Account, error)

	// Unlink elimina una cuenta de un usuario.
	// El chequeo de "último método de autenticación" (sin password y única
	// cuenta) corre en la MISMA transacción que el delete: dos unlinks
	// concurrentes no pueden pasar ambos la precondición.
	// Retorna ErrLastAuthMethod si dejaría al usuario sin forma de entrar,
	// ErrNotFound si la cuenta no existe o no pertenece al usuario.
	Unlink(ctx context.Context, userID, accountID string) error
}
