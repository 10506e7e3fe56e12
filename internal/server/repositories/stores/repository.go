package stores

import (
	"context"

	"github.com/tableorderhq/tableorder/internal/server/models"
)

type Repository interface {
	GetByOwner(ctx context.Context, ownerID string) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error

	ListSpaces(ctx context.Context, storeID string) ([]models.Space, error)
	CreateSpace(ctx context.Context, space *models.Space) (*models.Space, error)
	UpdateSpace(ctx context.Context, space *models.Space) error
	DeleteSpace(ctx context.Context, id string) error

	ListTables(ctx context.Context, storeID string) ([]models.Table, error)
	GetTable(ctx context.Context, id string) (*models.Table, error)
	CreateTable(ctx context.Context, table *models.Table) (*models.Table, error)
	UpdateTable(ctx context.Context, table *models.Table) error
	DeleteTable(ctx context.Context, id string) error
}
