package admin

import (
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/admin"
)

// Controllers agrupa los controllers del área administrativa.
type Controllers struct {
	Users *UsersController
	Stats *StatsController
}

// NewControllers crea los controllers administrativos.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Users: NewUsersController(s.Users),
		Stats: NewStatsController(s.Stats),
	}
}
