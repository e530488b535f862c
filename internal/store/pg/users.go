package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
)

// UserRepo implementa repository.UserRepository sobre la tabla app_user.
type UserRepo struct {
	pool *pgxpool.Pool
}

const userCols = `id, username, email, password_hash, role, theme, profile_image, created_at, updated_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Role, &u.Theme, &u.ProfileImage,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*repository.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, userID)
	return scanUser(row)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE username = $1`, username)
	return scanUser(row)
}

func (r *UserRepo) List(ctx context.Context) ([]repository.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM app_user ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []repository.User
	for rows.Next() {
		var u repository.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.Role, &u.Theme, &u.ProfileImage,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	role := input.Role
	if role == "" {
		role = repository.RoleViewer
	}
	theme := input.Theme
	if theme == "" {
		theme = repository.ThemeLight
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO app_user (id, username, email, password_hash, role, theme, profile_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+userCols,
		id, input.Username, input.Email, input.PasswordHash,
		role, theme, input.ProfileImage, now,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapConflict(err)
	}
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, userID string, input repository.UpdateUserInput) (*repository.User, error) {
	// SET dinámico solo con los campos presentes
	sets := []string{"updated_at = NOW()"}
	args := []any{userID}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Username != nil {
		add("username", *input.Username)
	}
	if input.Email != nil {
		add("email", *input.Email)
	}
	if input.PasswordHash != nil {
		add("password_hash", *input.PasswordHash)
	}
	if input.Role != nil {
		add("role", *input.Role)
	}
	if input.Theme != nil {
		add("theme", *input.Theme)
	}
	if input.ProfileImage != nil {
		add("profile_image", *input.ProfileImage)
	}

	query := `UPDATE app_user SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + userCols

	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapConflict(err)
	}
	return u, nil
}

func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role repository.Role) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM app_user WHERE role = $1`, role).Scan(&n)
	return n, err
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM app_user`).Scan(&n)
	return n, err
}

// mapConflict traduce unique violations (23505) a repository.ErrConflict.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrConflict
	}
	return err
}
