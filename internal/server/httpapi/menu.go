package httpapi

import (
	"net/http"
	"time"

	"github.com/tableorderhq/tableorder/internal/server/models"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	categories, err := s.menus.ListCategories(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	var req struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	category, err := s.menus.CreateCategory(r.Context(), userID, req.Name, req.Position)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	category := &models.Category{ID: r.PathValue("id"), Name: req.Name, Position: req.Position}
	if err := s.menus.UpdateCategory(r.Context(), category); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.menus.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type menuRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	ImageKey   string `json:"image_key"`
	SoldOut    bool   `json:"sold_out"`
}

func (s *Server) handleListMenus(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	items, err := s.menus.ListMenus(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateMenu(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	var req menuRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item, err := s.menus.CreateMenu(r.Context(), userID, &models.Menu{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
		ImageKey:   req.ImageKey,
		SoldOut:    req.SoldOut,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateMenu(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item := &models.Menu{
		ID:         r.PathValue("id"),
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
		ImageKey:   req.ImageKey,
		SoldOut:    req.SoldOut,
	}
	if err := s.menus.UpdateMenu(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteMenu(w http.ResponseWriter, r *http.Request) {
	if err := s.menus.DeleteMenu(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type optionGroupRequest struct {
	MenuID    string `json:"menu_id"`
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	MaxSelect int    `json:"max_select"`
	Choices   []struct {
		Name       string `json:"name"`
		PriceDelta int64  `json:"price_delta"`
	} `json:"choices"`
}

func (r optionGroupRequest) toModel(id string) *models.OptionGroup {
	g := &models.OptionGroup{
		ID:        id,
		MenuID:    r.MenuID,
		Name:      r.Name,
		Required:  r.Required,
		MaxSelect: r.MaxSelect,
	}
	for _, c := range r.Choices {
		g.Choices = append(g.Choices, models.OptionChoice{Name: c.Name, PriceDelta: c.PriceDelta})
	}
	return g
}

func (s *Server) handleListOptionGroups(w http.ResponseWriter, r *http.Request) {
	menuID := r.URL.Query().Get("menu_id")
	if menuID == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	groups, err := s.menus.ListOptionGroups(r.Context(), menuID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"option_groups": groups})
}

func (s *Server) handleCreateOptionGroup(w http.ResponseWriter, r *http.Request) {
	var req optionGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	group, err := s.menus.CreateOptionGroup(r.Context(), req.toModel(""))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleUpdateOptionGroup(w http.ResponseWriter, r *http.Request) {
	var req optionGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	group := req.toModel(r.PathValue("id"))
	if err := s.menus.UpdateOptionGroup(r.Context(), group); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteOptionGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.menus.DeleteOptionGroup(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type promotionRequest struct {
	MenuID   string    `json:"menu_id"`
	Kind     string    `json:"kind"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

func (s *Server) handleListPromotions(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	promotions, err := s.menus.ListPromotions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"promotions": promotions})
}

func (s *Server) handleCreatePromotion(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	var req promotionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	promotion, err := s.menus.CreatePromotion(r.Context(), userID, &models.Promotion{
		MenuID:   req.MenuID,
		Kind:     req.Kind,
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, promotion)
}

func (s *Server) handleUpdatePromotion(w http.ResponseWriter, r *http.Request) {
	var req promotionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	promotion := &models.Promotion{
		ID:       r.PathValue("id"),
		MenuID:   req.MenuID,
		Kind:     req.Kind,
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if err := s.menus.UpdatePromotion(r.Context(), promotion); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promotion)
}

func (s *Server) handleDeletePromotion(w http.ResponseWriter, r *http.Request) {
	if err := s.menus.DeletePromotion(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
