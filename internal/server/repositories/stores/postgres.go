// Package stores provides a PostgreSQL-backed repository for the store
// profile and its spaces and tables.
package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/dbx"
	"github.com/tableorderhq/tableorder/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Store, error) {
	query := `
		SELECT id, owner_id, name, address, phone, business_hours, created_at, updated_at
		FROM stores
		WHERE owner_id = $1
	`
	s := &models.Store{}
	err := r.db.QueryRowContext(ctx, query, ownerID).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Phone, &s.BusinessHours, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, store *models.Store) (*models.Store, error) {
	query := `
		INSERT INTO stores (id, owner_id, name, address, phone, business_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		store.ID, store.OwnerID, store.Name, store.Address, store.Phone, store.BusinessHours).
		Scan(&store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return store, nil
}

func (r *PostgresRepository) Update(ctx context.Context, store *models.Store) error {
	query := `
		UPDATE stores
		SET name = $2, address = $3, phone = $4, business_hours = $5, updated_at = now()
		WHERE id = $1
	`
	return r.exec(ctx, query, store.ID, store.Name, store.Address, store.Phone, store.BusinessHours)
}

func (r *PostgresRepository) ListSpaces(ctx context.Context, storeID string) ([]models.Space, error) {
	query := `
		SELECT id, store_id, name, position, created_at
		FROM spaces
		WHERE store_id = $1
		ORDER BY position, created_at
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var spaces []models.Space
	for rows.Next() {
		var s models.Space
		if err := rows.Scan(&s.ID, &s.StoreID, &s.Name, &s.Position, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return spaces, nil
}

func (r *PostgresRepository) CreateSpace(ctx context.Context, space *models.Space) (*models.Space, error) {
	query := `
		INSERT INTO spaces (id, store_id, name, position)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, space.ID, space.StoreID, space.Name, space.Position).
		Scan(&space.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return space, nil
}

func (r *PostgresRepository) UpdateSpace(ctx context.Context, space *models.Space) error {
	query := `UPDATE spaces SET name = $2, position = $3 WHERE id = $1`
	return r.exec(ctx, query, space.ID, space.Name, space.Position)
}

// DeleteSpace removes a space; its tables go with it via ON DELETE CASCADE.
func (r *PostgresRepository) DeleteSpace(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM spaces WHERE id = $1`, id)
}

func (r *PostgresRepository) ListTables(ctx context.Context, storeID string) ([]models.Table, error) {
	query := `
		SELECT t.id, t.space_id, t.label, t.active, t.x, t.y, t.width, t.height, t.qr_token, t.created_at
		FROM tables t
		JOIN spaces s ON s.id = t.space_id
		WHERE s.store_id = $1
		ORDER BY t.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.SpaceID, &t.Label, &t.Active, &t.X, &t.Y, &t.Width, &t.Height, &t.QRToken, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tables, nil
}

func (r *PostgresRepository) GetTable(ctx context.Context, id string) (*models.Table, error) {
	query := `
		SELECT id, space_id, label, active, x, y, width, height, qr_token, created_at
		FROM tables
		WHERE id = $1
	`
	t := &models.Table{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.SpaceID, &t.Label, &t.Active, &t.X, &t.Y, &t.Width, &t.Height, &t.QRToken, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) CreateTable(ctx context.Context, table *models.Table) (*models.Table, error) {
	query := `
		INSERT INTO tables (id, space_id, label, active, x, y, width, height, qr_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		table.ID, table.SpaceID, table.Label, table.Active,
		table.X, table.Y, table.Width, table.Height, table.QRToken).
		Scan(&table.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return table, nil
}

func (r *PostgresRepository) UpdateTable(ctx context.Context, table *models.Table) error {
	query := `
		UPDATE tables
		SET label = $2, active = $3, x = $4, y = $5, width = $6, height = $7
		WHERE id = $1
	`
	return r.exec(ctx, query, table.ID, table.Label, table.Active, table.X, table.Y, table.Width, table.Height)
}

func (r *PostgresRepository) DeleteTable(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM tables WHERE id = $1`, id)
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
