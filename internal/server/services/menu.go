package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tableorderhq/tableorder/internal/common"
	"github.com/tableorderhq/tableorder/internal/server/models"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
)

// MenuService manages the menu board: categories, items, option groups and
// promotions.
type MenuService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	stores      *StoreService
}

func NewMenuService(db *sql.DB, m repomanager.RepositoryManager, stores *StoreService) *MenuService {
	return &MenuService{db: db, repomanager: m, stores: stores}
}

func (s *MenuService) storeID(ctx context.Context, ownerID string) (string, error) {
	store, err := s.stores.GetStore(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return store.ID, nil
}

func (s *MenuService) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	storeID, err := s.storeID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Menus(s.db).ListCategories(ctx, storeID)
}

func (s *MenuService) CreateCategory(ctx context.Context, ownerID, name string, position int) (*models.Category, error) {
	if name == "" {
		return nil, common.ErrorValidation
	}
	storeID, err := s.storeID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Menus(s.db).CreateCategory(ctx, &models.Category{
		ID:       uuid.NewString(),
		StoreID:  storeID,
		Name:     name,
		Position: position,
	})
}

func (s *MenuService) UpdateCategory(ctx context.Context, c *models.Category) error {
	return s.repomanager.Menus(s.db).UpdateCategory(ctx, c)
}

func (s *MenuService) DeleteCategory(ctx context.Context, id string) error {
	return s.repomanager.Menus(s.db).DeleteCategory(ctx, id)
}

func (s *MenuService) ListMenus(ctx context.Context, ownerID string) ([]models.Menu, error) {
	storeID, err := s.storeID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Menus(s.db).ListMenus(ctx, storeID)
}

func (s *MenuService) GetMenu(ctx context.Context, id string) (*models.Menu, error) {
	return s.repomanager.Menus(s.db).GetMenu(ctx, id)
}

func (s *MenuService) CreateMenu(ctx context.Context, ownerID string, m *models.Menu) (*models.Menu, error) {
	if m.Name == "" || m.Price < 0 {
		return nil, common.ErrorValidation
	}
	storeID, err := s.storeID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	m.ID = uuid.NewString()
	m.StoreID = storeID
	return s.repomanager.Menus(s.db).CreateMenu(ctx, m)
}

func (s *MenuService) UpdateMenu(ctx context.Context, m *models.Menu) error {
	if m.Name == "" || m.Price < 0 {
		return common.ErrorValidation
	}
	return s.repomanager.Menus(s.db).UpdateMenu(ctx, m)
}

func (s *MenuService) DeleteMenu(ctx context.Context, id string) error {
	return s.repomanager.Menus(s.db).DeleteMenu(ctx, id)
}

func (s *MenuService) ListOptionGroups(ctx context.Context, menuID string) ([]models.OptionGroup, error) {
	return s.repomanager.Menus(s.db).ListOptionGroups(ctx, menuID)
}

// CreateOptionGroup stores a group with its choices. Choice ids are minted
// here so the client never supplies them.
func (s *MenuService) CreateOptionGroup(ctx context.Context, g *models.OptionGroup) (*models.OptionGroup, error) {
	if g.MenuID == "" || g.Name == "" {
		return nil, common.ErrorValidation
	}
	g.ID = uuid.NewString()
	for i := range g.Choices {
		g.Choices[i].ID = uuid.NewString()
		g.Choices[i].GroupID = g.ID
	}
	return s.repomanager.Menus(s.db).CreateOptionGroup(ctx, g)
}

func (s *MenuService) UpdateOptionGroup(ctx context.Context, g *models.OptionGroup) error {
	return s.repomanager.Menus(s.db).UpdateOptionGroup(ctx, g)
}

func (s *MenuService) DeleteOptionGroup(ctx context.Context, id string) error {
	return s.repomanager.Menus(s.db).DeleteOptionGroup(ctx, id)
}

func (s *MenuService) ListPromotions(ctx context.Context, ownerID string) ([]models.Promotion, error) {
	storeID, err := s.storeID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Menus(s.db).ListPromotions(ctx, storeID)
}

func (s *MenuService) CreatePromotion(ctx context.Context, ownerID string, p *models.Promotion) (*models.Promotion, error) {
	if p.MenuID == "" || p.Title == "" {
		return nil, common.ErrorValidation
	}
	if p.Kind != models.PromotionEvent && p.Kind != models.PromotionUpsell {
		return nil, common.ErrorValidation
	}
	storeID, err := s.storeID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.NewString()
	p.StoreID = storeID
	return s.repomanager.Menus(s.db).CreatePromotion(ctx, p)
}

func (s *MenuService) UpdatePromotion(ctx context.Context, p *models.Promotion) error {
	if p.Kind != models.PromotionEvent && p.Kind != models.PromotionUpsell {
		return common.ErrorValidation
	}
	return s.repomanager.Menus(s.db).UpdatePromotion(ctx, p)
}

func (s *MenuService) DeletePromotion(ctx context.Context, id string) error {
	return s.repomanager.Menus(s.db).DeletePromotion(ctx, id)
}
