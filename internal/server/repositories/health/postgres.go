// Package health counts rows per application table for the database
// health endpoints.
package health

import (
	"context"
	"fmt"

	"github.com/tableorderhq/tableorder/internal/dbx"
)

// Tables enumerates the application tables reported by the health
// endpoints, in display order.
var Tables = []string{
	"users", "stores", "spaces", "tables", "categories", "menus",
	"option_groups", "option_choices", "orders", "order_items",
	"order_item_options", "payments", "menu_recommendations",
}

// TableCount is one row of the health report.
type TableCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Counts returns per-table row counts. Strict mode fails on the first
// unreadable table; lenient mode reports such tables with count 0, matching
// the "-simple" endpoint.
func (r *PostgresRepository) Counts(ctx context.Context, strict bool) ([]TableCount, error) {
	out := make([]TableCount, 0, len(Tables))
	for _, name := range Tables {
		var n int64
		// Table names come from the fixed list above, never from input.
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", name)
		if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			if strict {
				return nil, fmt.Errorf("db error: %w", err)
			}
			n = 0
		}
		out = append(out, TableCount{Name: name, Count: n})
	}
	return out, nil
}
