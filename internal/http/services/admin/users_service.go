package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	dto "github.com/dropDatabas3/gatekeep/internal/http/dto/admin"
	userdto "github.com/dropDatabas3/gatekeep/internal/http/dto/user"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
	"github.com/dropDatabas3/gatekeep/internal/security/password"
)

const minPasswordLen = 8

// UsersDeps contiene las dependencias para el users service.
type UsersDeps struct {
	Users    repository.UserRepository
	Accounts repository.AccountRepository
}

type usersService struct {
	deps UsersDeps
}

// NewUsersService crea un nuevo servicio de administración de usuarios.
func NewUsersService(deps UsersDeps) UsersService {
	return &usersService{deps: deps}
}

func (s *usersService) List(ctx context.Context) (*dto.ListUsersResponse, error) {
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userOf(&users[i]))
	}
	return &dto.ListUsersResponse{Users: out, Total: len(out)}, nil
}

func (s *usersService) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := userOf(u)
	return &resp, nil
}

func (s *usersService) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.users"),
		logger.Op("Create"),
	)

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, ErrMissingUsername
	}

	role := repository.RoleViewer
	if in.Role != "" {
		role = repository.Role(in.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
	}

	input := repository.CreateUserInput{
		Username: in.Username,
		Role:     role,
	}
	if in.Email != "" {
		input.Email = &in.Email
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, ErrWeakPassword
		}
		hash, err := password.Hash(password.Default, in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		input.PasswordHash = &hash
	}

	u, err := s.deps.Users.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	log.Info("user created", logger.UserID(u.ID), logger.Role(string(u.Role)))
	resp := userOf(u)
	return &resp, nil
}

func (s *usersService) Update(ctx context.Context, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.users"),
		logger.Op("Update"),
		logger.UserID(userID),
	)

	upd := repository.UpdateUserInput{
		Email:        in.Email,
		ProfileImage: in.ProfileImage,
	}

	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		if trimmed == "" {
			return nil, ErrMissingUsername
		}
		upd.Username = &trimmed
	}

	if in.Role != nil {
		role := repository.Role(*in.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		// Degradar al último admin dejaría el panel sin administración.
		if role != repository.RoleAdmin {
			if err := s.ensureNotLastAdmin(ctx, userID); err != nil {
				return nil, err
			}
		}
		upd.Role = &role
	}

	if in.Theme != nil {
		t := repository.Theme(*in.Theme)
		if !t.Valid() {
			return nil, ErrInvalidTheme
		}
		upd.Theme = &t
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, ErrWeakPassword
		}
		hash, err := password.Hash(password.Default, *in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}

	u, err := s.deps.Users.Update(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	log.Info("user updated")
	resp := userOf(u)
	return &resp, nil
}

func (s *usersService) Delete(ctx context.Context, userID string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.users"),
		logger.Op("Delete"),
		logger.UserID(userID),
	)

	if err := s.ensureNotLastAdmin(ctx, userID); err != nil {
		return err
	}
	if err := s.deps.Users.Delete(ctx, userID); err != nil {
		return err
	}
	log.Info("user deleted")
	return nil
}

func (s *usersService) ListAccounts(ctx context.Context, userID string) (*userdto.LinkedAccountsResponse, error) {
	accs, err := s.deps.Accounts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]userdto.LinkedAccountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, userdto.LinkedAccountResponse{
			ID:       a.ID,
			Provider: string(a.Provider),
			Label:    a.Label,
			Picture:  a.Picture,
			LinkedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &userdto.LinkedAccountsResponse{Accounts: out}, nil
}

func (s *usersService) UnlinkAccount(ctx context.Context, userID, accountID string) error {
	return s.deps.Accounts.Unlink(ctx, userID, accountID)
}

// ensureNotLastAdmin rechaza la operación si el usuario es el único admin.
func (s *usersService) ensureNotLastAdmin(ctx context.Context, userID string) error {
	u, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role != repository.RoleAdmin {
		return nil
	}
	admins, err := s.deps.Users.CountByRole(ctx, repository.RoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func userOf(u *repository.User) dto.UserResponse {
	email := ""
	if u.Email != nil {
		email = *u.Email
	}
	return dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        email,
		Role:         string(u.Role),
		Theme:        string(u.Theme),
		ProfileImage: u.ProfileImage,
		HasPassword:  u.HasPassword(),
		CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
