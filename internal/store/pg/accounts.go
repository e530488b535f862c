package pg

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
)

// AccountRepo implementa repository.AccountRepository sobre la tabla account.
type AccountRepo struct {
	pool *pgxpool.Pool
}

const accountCols = `id, user_id, provider, provider_account_id, label, picture, id_token, created_at`

func scanAccount(row pgx.Row) (*repository.Account, error) {
	var a repository.Account
	err := row.Scan(
		&a.ID, &a.UserID, &a.Provider, &a.ProviderAccountID,
		&a.Label, &a.Picture, &a.IDToken, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ListByUserID(ctx context.Context, userID string) ([]repository.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountCols+` FROM account WHERE user_id = $1 ORDER BY provider`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []repository.Account
	for rows.Next() {
		var a repository.Account
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Provider, &a.ProviderAccountID,
			&a.Label, &a.Picture, &a.IDToken, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepo) LinkedProviders(ctx context.Context, userID string) (map[provider.ID]bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT provider FROM account
		WHERE user_id = $1 AND provider = ANY($2)`,
		userID, []string{string(provider.Microsoft), string(provider.Google), string(provider.Steam)},
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	linked := map[provider.ID]bool{
		provider.Microsoft: false,
		provider.Google:    false,
		provider.Steam:     false,
	}
	for rows.Next() {
		var p provider.ID
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		linked[p] = true
	}
	return linked, rows.Err()
}

func (r *AccountRepo) GetByProviderAccount(ctx context.Context, p provider.ID, providerAccountID string) (*repository.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM account WHERE provider = $1 AND provider_account_id = $2`,
		p, providerAccountID)
	return scanAccount(row)
}

func (r *AccountRepo) GetByID(ctx context.Context, accountID string) (*repository.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM account WHERE id = $1`, accountID)
	return scanAccount(row)
}

func (r *AccountRepo) Link(ctx context.Context, input repository.LinkAccountInput) (*repository.Account, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO account (id, user_id, provider, provider_account_id, label, picture, id_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+accountCols,
		id, input.UserID, input.Provider, input.ProviderAccountID,
		input.Label, input.Picture, input.IDToken, now,
	)
	a, err := scanAccount(row)
	if err != nil {
		return nil, mapConflict(err)
	}
	return a, nil
}

func (r *AccountRepo) Unlink(ctx context.Context, userID, accountID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock del usuario: serializa unlinks concurrentes del mismo usuario,
	// la precondición y el delete ven el mismo snapshot.
	var passwordHash *string
	err = tx.QueryRow(ctx,
		`SELECT password_hash FROM app_user WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}

	var owner string
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM account WHERE id = $1`, accountID,
	).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && owner != userID) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}

	hasPassword := passwordHash != nil && *passwordHash != ""
	var cnt int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM account WHERE user_id = $1`, userID,
	).Scan(&cnt); err != nil {
		return err
	}
	if repository.UnlinkLocksOut(hasPassword, cnt) {
		return repository.ErrLastAuthMethod
	}

	if _, err := tx.Exec(ctx, `DELETE FROM account WHERE id = $1`, accountID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
