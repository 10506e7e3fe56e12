// Package menus provides a PostgreSQL-backed repository for the menu board:
// categories, menu items, option groups/choices, and promotions.
package menus

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

func (r *PostgresRepository) ListCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	query := `
		SELECT id, store_id, name, position, created_at
		FROM categories
		WHERE store_id = $1
		ORDER BY position, created_at
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cats, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (id, store_id, name, position)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, c.ID, c.StoreID, c.Name, c.Position).Scan(&c.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c *models.Category) error {
	return r.exec(ctx, `UPDATE categories SET name = $2, position = $3 WHERE id = $1`, c.ID, c.Name, c.Position)
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
}

func (r *PostgresRepository) ListMenus(ctx context.Context, storeID string) ([]models.Menu, error) {
	query := `
		SELECT id, store_id, COALESCE(category_id::text, ''), name, price, image_key, sold_out, created_at, updated_at
		FROM menus
		WHERE store_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []models.Menu
	for rows.Next() {
		var m models.Menu
		if err := rows.Scan(&m.ID, &m.StoreID, &m.CategoryID, &m.Name, &m.Price, &m.ImageKey, &m.SoldOut, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) GetMenu(ctx context.Context, id string) (*models.Menu, error) {
	query := `
		SELECT id, store_id, COALESCE(category_id::text, ''), name, price, image_key, sold_out, created_at, updated_at
		FROM menus
		WHERE id = $1
	`
	m := &models.Menu{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.StoreID, &m.CategoryID, &m.Name, &m.Price, &m.ImageKey, &m.SoldOut, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) CreateMenu(ctx context.Context, m *models.Menu) (*models.Menu, error) {
	query := `
		INSERT INTO menus (id, store_id, category_id, name, price, image_key, sold_out)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		m.ID, m.StoreID, m.CategoryID, m.Name, m.Price, m.ImageKey, m.SoldOut).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) UpdateMenu(ctx context.Context, m *models.Menu) error {
	query := `
		UPDATE menus
		SET category_id = NULLIF($2, '')::uuid, name = $3, price = $4, image_key = $5, sold_out = $6, updated_at = now()
		WHERE id = $1
	`
	return r.exec(ctx, query, m.ID, m.CategoryID, m.Name, m.Price, m.ImageKey, m.SoldOut)
}

func (r *PostgresRepository) DeleteMenu(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
}

func (r *PostgresRepository) ListOptionGroups(ctx context.Context, menuID string) ([]models.OptionGroup, error) {
	query := `
		SELECT id, menu_id, name, required, max_select
		FROM option_groups
		WHERE menu_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, menuID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var groups []models.OptionGroup
	for rows.Next() {
		var g models.OptionGroup
		if err := rows.Scan(&g.ID, &g.MenuID, &g.Name, &g.Required, &g.MaxSelect); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for i := range groups {
		choices, err := r.listChoices(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Choices = choices
	}
	return groups, nil
}

func (r *PostgresRepository) listChoices(ctx context.Context, groupID string) ([]models.OptionChoice, error) {
	query := `
		SELECT id, group_id, name, price_delta
		FROM option_choices
		WHERE group_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var choices []models.OptionChoice
	for rows.Next() {
		var c models.OptionChoice
		if err := rows.Scan(&c.ID, &c.GroupID, &c.Name, &c.PriceDelta); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return choices, nil
}

func (r *PostgresRepository) CreateOptionGroup(ctx context.Context, g *models.OptionGroup) (*models.OptionGroup, error) {
	query := `
		INSERT INTO option_groups (id, menu_id, name, required, max_select)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, g.ID, g.MenuID, g.Name, g.Required, g.MaxSelect); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	for i := range g.Choices {
		c := &g.Choices[i]
		c.GroupID = g.ID
		choiceQuery := `
			INSERT INTO option_choices (id, group_id, name, price_delta)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := r.db.ExecContext(ctx, choiceQuery, c.ID, c.GroupID, c.Name, c.PriceDelta); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}
	return g, nil
}

func (r *PostgresRepository) UpdateOptionGroup(ctx context.Context, g *models.OptionGroup) error {
	return r.exec(ctx, `UPDATE option_groups SET name = $2, required = $3, max_select = $4 WHERE id = $1`,
		g.ID, g.Name, g.Required, g.MaxSelect)
}

func (r *PostgresRepository) DeleteOptionGroup(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM option_groups WHERE id = $1`, id)
}

func (r *PostgresRepository) ListPromotions(ctx context.Context, storeID string) ([]models.Promotion, error) {
	query := `
		SELECT id, store_id, menu_id, kind, title, starts_at, ends_at, created_at
		FROM menu_recommendations
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var promos []models.Promotion
	for rows.Next() {
		var p models.Promotion
		if err := rows.Scan(&p.ID, &p.StoreID, &p.MenuID, &p.Kind, &p.Title, &p.StartsAt, &p.EndsAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return promos, nil
}

func (r *PostgresRepository) CreatePromotion(ctx context.Context, p *models.Promotion) (*models.Promotion, error) {
	query := `
		INSERT INTO menu_recommendations (id, store_id, menu_id, kind, title, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.StoreID, p.MenuID, p.Kind, p.Title, p.StartsAt, p.EndsAt).
		Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) UpdatePromotion(ctx context.Context, p *models.Promotion) error {
	return r.exec(ctx, `UPDATE menu_recommendations SET menu_id = $2, kind = $3, title = $4, starts_at = $5, ends_at = $6 WHERE id = $1`,
		p.ID, p.MenuID, p.Kind, p.Title, p.StartsAt, p.EndsAt)
}

func (r *PostgresRepository) DeletePromotion(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM menu_recommendations WHERE id = $1`, id)
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
