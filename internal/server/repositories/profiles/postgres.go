// Package profiles provides a PostgreSQL-backed repository for the
// application-level user records.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/dbx"
	"github.com/tableorderhq/tableorder/internal/server/models"
)

// ErrDuplicate is returned by Create when a row with the same id or email
// already exists. The ensure-profile flow treats it as "somebody else won
// the race" and reads the winner back.
var ErrDuplicate = errors.New("profile already exists")

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO users (id, email, name, role, avatar_key, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		profile.ID, profile.Email, profile.Name, profile.Role, profile.AvatarKey, profile.PasswordHash).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, email, name, role, avatar_key, password_hash, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT id, email, name, role, avatar_key, password_hash, last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Role, &p.AvatarKey, &p.PasswordHash,
		&p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, name, role string) error {
	query := `UPDATE users SET name = $2, role = $3, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, name, role)
}

func (r *PostgresRepository) UpdateAvatarKey(ctx context.Context, id, key string) error {
	query := `UPDATE users SET avatar_key = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, key)
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, hash)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
