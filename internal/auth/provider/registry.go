package provider

// Flags reporta qué providers están globalmente habilitados por la
// configuración del deployment, más el flag transversal que apaga el
// password cuando hay alguna cuenta OAuth vinculada.
//
// Config ausente para un provider OAuth significa "feature deshabilitada",
// nunca un error.
type Flags struct {
	Credentials bool
	Microsoft   bool
	Google      bool
	Steam       bool

	// DisablePasswordWhenLinked: true = el login por password se rechaza
	// para usuarios con CUALQUIER provider OAuth vinculado.
	// Polaridad canónica fijada acá; no replicar las variantes históricas.
	DisablePasswordWhenLinked bool
}

// Enabled retorna el flag global para un provider.
func (f Flags) Enabled(id ID) bool {
	switch id {
	case Credentials:
		return f.Credentials
	case Microsoft:
		return f.Microsoft
	case Google:
		return f.Google
	case Steam:
		return f.Steam
	default:
		return false
	}
}

// EnabledOAuth retorna los providers OAuth habilitados, en orden canónico.
func (f Flags) EnabledOAuth() []ID {
	out := make([]ID, 0, len(OAuthOrder))
	for _, id := range OAuthOrder {
		if f.Enabled(id) {
			out = append(out, id)
		}
	}
	return out
}

// Registry expone los flags globales de providers. Se construye una vez al
// arrancar el proceso a partir de la config; inmutable después, por lo que
// es seguro para lecturas concurrentes sin sincronización.
type Registry struct {
	flags Flags
}

// NewRegistry crea un registry con los flags derivados de la config.
func NewRegistry(flags Flags) *Registry {
	return &Registry{flags: flags}
}

// Global retorna los flags del proceso. Función pura de la configuración;
// constante durante la vida del proceso.
func (r *Registry) Global() Flags {
	return r.flags
}
