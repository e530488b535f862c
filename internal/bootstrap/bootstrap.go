// Package bootstrap maneja la instalación inicial: mientras no exista
// ningún admin, el sistema acepta la creación del primer usuario (siempre
// ADMIN) vía HTTP o por el subcomando admin:create.
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
	"github.com/dropDatabas3/gatekeep/internal/security/password"
)

// Errores de instalación
var (
	ErrAlreadyInstalled = errors.New("first user already exists")
	ErrMissingFields    = errors.New("username and password are required")
	ErrWeakPassword     = errors.New("password too weak")
)

const minPasswordLen = 8

// Service resuelve el estado de instalación y crea el primer usuario.
type Service struct {
	Users repository.UserRepository
}

// NewService crea el servicio de bootstrap.
func NewService(users repository.UserRepository) *Service {
	return &Service{Users: users}
}

// NeedsFirstUser retorna true mientras no exista ningún admin.
func (s *Service) NeedsFirstUser(ctx context.Context) (bool, error) {
	admins, err := s.Users.CountByRole(ctx, repository.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return admins == 0, nil
}

// CreateFirstUser crea el primer usuario del sistema con rol ADMIN.
// Falla con ErrAlreadyInstalled si ya hay un admin: la ventana de bootstrap
// se cierra sola con la primera creación exitosa.
func (s *Service) CreateFirstUser(ctx context.Context, username, email, plain string) (*repository.User, error) {
	log := logger.L().With(logger.Component("bootstrap"), logger.Op("CreateFirstUser"))

	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return nil, ErrMissingFields
	}
	if len(plain) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	needs, err := s.NeedsFirstUser(ctx)
	if err != nil {
		return nil, err
	}
	if !needs {
		return nil, ErrAlreadyInstalled
	}

	hash, err := password.Hash(password.Default, plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	input := repository.CreateUserInput{
		Username:     username,
		PasswordHash: &hash,
		Role:         repository.RoleAdmin,
	}
	if email = strings.TrimSpace(email); email != "" {
		input.Email = &email
	}

	user, err := s.Users.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	log.Info("first admin created", logger.UserID(user.ID), logger.Username(user.Username))
	return user, nil
}

// PromptCredentials pide username/email/password por terminal para el
// subcomando admin:create. El password se lee sin eco.
func PromptCredentials() (username, email, plain string, err error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err = reader.ReadString('\n')
	if err != nil {
		return "", "", "", err
	}
	username = strings.TrimSpace(username)

	fmt.Print("Email (optional): ")
	email, err = reader.ReadString('\n')
	if err != nil {
		return "", "", "", err
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", "", err
	}

	fmt.Print("Confirm password: ")
	pw2, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", "", err
	}

	if string(pw) != string(pw2) {
		return "", "", "", errors.New("passwords do not match")
	}
	return username, email, string(pw), nil
}
