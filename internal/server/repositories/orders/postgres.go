// Package orders provides a PostgreSQL-backed repository for orders, their
// items/options, and payments.
package orders

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

// NextNumber returns the next human-facing order number for the year,
// e.g. O-2025-0042. Callers should invoke it inside the same transaction
// as Create so concurrent submissions cannot collide.
func (r *PostgresRepository) NextNumber(ctx context.Context, year int) (string, error) {
	query := `SELECT COUNT(*) + 1 FROM orders WHERE number LIKE $1`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, fmt.Sprintf("O-%d-%%", year)).Scan(&n); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return fmt.Sprintf("O-%d-%04d", year, n), nil
}

// Create inserts the order with its items and item options.
func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `
		INSERT INTO orders (id, number, store_id, table_id, table_name, status, total)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		order.ID, order.Number, order.StoreID, order.TableID, order.TableName, order.Status, order.Total).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		itemQuery := `
			INSERT INTO order_items (id, order_id, menu_id, name, unit_price, quantity)
			VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6)
		`
		if _, err := r.db.ExecContext(ctx, itemQuery,
			item.ID, item.OrderID, item.MenuID, item.Name, item.UnitPrice, item.Quantity); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		for j := range item.Options {
			opt := &item.Options[j]
			opt.OrderItemID = item.ID
			optQuery := `
				INSERT INTO order_item_options (id, order_item_id, choice_id, name, price_delta)
				VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5)
			`
			if _, err := r.db.ExecContext(ctx, optQuery,
				opt.ID, opt.OrderItemID, opt.ChoiceID, opt.Name, opt.PriceDelta); err != nil {
				return nil, fmt.Errorf("db error: %w", err)
			}
		}
	}

	return order, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, number, store_id, COALESCE(table_id::text, ''), table_name, status, total, method, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	o := &models.Order{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&o.ID, &o.Number, &o.StoreID, &o.TableID, &o.TableName, &o.Status, &o.Total, &o.Method, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) List(ctx context.Context, storeID string) ([]models.Order, error) {
	query := `
		SELECT id, number, store_id, COALESCE(table_id::text, ''), table_name, status, total, method, created_at, updated_at
		FROM orders
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.StoreID, &o.TableID, &o.TableName, &o.Status, &o.Total, &o.Method, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) MarkPaid(ctx context.Context, id, method string) error {
	query := `
		UPDATE orders
		SET status = 'paid', method = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`
	res, err := r.db.ExecContext(ctx, query, id, method)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Cancel flips the order to cancelled. The guard makes the transition
// monotone at the database: a second cancel matches zero rows and returns
// ok=false without error (idempotent terminal state).
func (r *PostgresRepository) Cancel(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE orders
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status <> 'cancelled'
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, method, amount)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.OrderID, p.Method, p.Amount); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
