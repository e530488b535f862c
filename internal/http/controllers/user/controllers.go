package user

import (
	svc "github.com/dropDatabas3/gatekeep/internal/http/services/user"
)

// Controllers agrupa los controllers del área de usuario.
type Controllers struct {
	Profile  *ProfileController
	Accounts *AccountsController
	Steam    *SteamController
}

// NewControllers crea los controllers de usuario.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Profile:  NewProfileController(s.Profile),
		Accounts: NewAccountsController(s.Accounts),
		Steam:    NewSteamController(s.Steam),
	}
}
