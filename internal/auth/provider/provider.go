// Package provider define los IDs canónicos de métodos de autenticación.
//
// Un solo tipo enumerado usado en todas las capas (registry, repositorios,
// policy, resolver): agregar un cuarto provider OAuth es un cambio en un
// solo lugar (constante + OAuthOrder + config).
package provider

// ID identifica un método de autenticación: la credencial local (password)
// o un issuer OAuth externo.
type ID string

const (
	Credentials ID = "credentials"
	Microsoft   ID = "microsoft"
	Google      ID = "google"
	Steam       ID = "steam"
)

// OAuthOrder es el orden canónico de presentación de providers OAuth.
// Preflight, listados y UI usan SIEMPRE este orden.
var OAuthOrder = []ID{Microsoft, Google, Steam}

// IsOAuth retorna true para providers OAuth (excluye credentials).
func (id ID) IsOAuth() bool {
	switch id {
	case Microsoft, Google, Steam:
		return true
	}
	return false
}

// Valid retorna true si el ID es uno de los conocidos.
func (id ID) Valid() bool {
	return id == Credentials || id.IsOAuth()
}

// Label retorna el nombre UI-friendly del provider.
func (id ID) Label() string {
	switch id {
	case Credentials:
		return "Username & Password"
	case Microsoft:
		return "Microsoft"
	case Google:
		return "Google"
	case Steam:
		return "Steam"
	default:
		return string(id)
	}
}
