package visibility

import "github.com/dropDatabas3/gatekeep/internal/auth/provider"

// Códigos de steering machine-readable. Preflight los devuelve como hint y
// el authorizer los reusa como razón de rechazo: el cliente enruta su
// mensajería con estos strings, nunca con un "access denied" genérico.
const (
	CodeOAuthOnly          = "OAUTH_ONLY"
	CodeOAuthOnlyMicrosoft = "OAUTH_ONLY_MICROSOFT"
	CodeOAuthOnlyGoogle    = "OAUTH_ONLY_GOOGLE"
	CodeOAuthOnlySteam     = "OAUTH_ONLY_STEAM"
)

// Steering reduce una Decision con credentials=false a un código de steering
// más la lista ordenada de providers OAuth visibles.
//
//   - Exactamente uno visible: código específico del provider, para que el
//     cliente muestre un call-to-action preciso.
//   - Varios visibles: código genérico + lista en orden canónico.
//   - Cero visibles (lockout por misconfiguración de política): caso
//     degenerado definido, código genérico + lista vacía, nunca un error.
func Steering(d Decision) (code string, providers []provider.ID) {
	providers = d.VisibleOAuth()

	if len(providers) == 1 {
		switch providers[0] {
		case provider.Microsoft:
			return CodeOAuthOnlyMicrosoft, providers
		case provider.Google:
			return CodeOAuthOnlyGoogle, providers
		case provider.Steam:
			return CodeOAuthOnlySteam, providers
		}
	}

	return CodeOAuthOnly, providers
}
