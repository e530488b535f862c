package user

import "github.com/dropDatabas3/gatekeep/internal/domain/repository"

// Services agrupa todos los services del área self-service.
type Services struct {
	Profile  ProfileService
	Accounts AccountsService
	Steam    SteamService
}

// Deps contiene las dependencias compartidas del área self-service.
type Deps struct {
	Users    repository.UserRepository
	Accounts repository.AccountRepository
	// Steam nil significa sin API key: los endpoints de datos de Steam
	// responden SERVICE_UNAVAILABLE para usuarios con cuenta vinculada.
	Steam SteamAPI
}

// NewServices crea el agregador de services user.
func NewServices(d Deps) Services {
	return Services{
		Profile:  NewProfileService(ProfileDeps{Users: d.Users}),
		Accounts: NewAccountsService(AccountsDeps{Accounts: d.Accounts}),
		Steam:    NewSteamService(SteamDeps{Accounts: d.Accounts, API: d.Steam}),
	}
}
