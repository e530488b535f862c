package admin

import "github.com/dropDatabas3/gatekeep/internal/domain/repository"

// Services agrupa todos los services del área administrativa.
type Services struct {
	Users UsersService
	Stats StatsService
}

// Deps contiene las dependencias compartidas del área administrativa.
type Deps struct {
	Users    repository.UserRepository
	Accounts repository.AccountRepository
}

// NewServices crea el agregador de services admin.
func NewServices(d Deps) Services {
	return Services{
		Users: NewUsersService(UsersDeps{Users: d.Users, Accounts: d.Accounts}),
		Stats: NewStatsService(StatsDeps{Users: d.Users}),
	}
}
