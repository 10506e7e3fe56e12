package menus

import (
	"context"

	"github.com/tableorderhq/tableorder/internal/server/models"
)

type Repository interface {
	ListCategories(ctx context.Context, storeID string) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListMenus(ctx context.Context, storeID string) ([]models.Menu, error)
	GetMenu(ctx context.Context, id string) (*models.Menu, error)
	CreateMenu(ctx context.Context, m *models.Menu) (*models.Menu, error)
	UpdateMenu(ctx context.Context, m *models.Menu) error
	DeleteMenu(ctx context.Context, id string) error

	ListOptionGroups(ctx context.Context, menuID string) ([]models.OptionGroup, error)
	CreateOptionGroup(ctx context.Context, g *models.OptionGroup) (*models.OptionGroup, error)
	UpdateOptionGroup(ctx context.Context, g *models.OptionGroup) error
	DeleteOptionGroup(ctx context.Context, id string) error

	ListPromotions(ctx context.Context, storeID string) ([]models.Promotion, error)
	CreatePromotion(ctx context.Context, p *models.Promotion) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, p *models.Promotion) error
	DeletePromotion(ctx context.Context, id string) error
}
