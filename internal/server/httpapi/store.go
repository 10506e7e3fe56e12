package httpapi

import (
	"net/http"

	"github.com/tableorderhq/tableorder/internal/server/models"
)

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	store, err := s.stores.GetStore(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

func (s *Server) handleUpdateStore(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	var req struct {
		Name          string `json:"name"`
		Address       string `json:"address"`
		Phone         string `json:"phone"`
		BusinessHours string `json:"business_hours"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	store, err := s.stores.UpdateStore(r.Context(), userID, req.Name, req.Address, req.Phone, req.BusinessHours)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	spaces, err := s.stores.ListSpaces(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"spaces": spaces})
}

func (s *Server) handleCreateSpace(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	var req struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	space, err := s.stores.CreateSpace(r.Context(), userID, req.Name, req.Position)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, space)
}

func (s *Server) handleUpdateSpace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	space := &models.Space{ID: r.PathValue("id"), Name: req.Name, Position: req.Position}
	if err := s.stores.UpdateSpace(r.Context(), space); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, space)
}

func (s *Server) handleDeleteSpace(w http.ResponseWriter, r *http.Request) {
	if err := s.stores.DeleteSpace(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)
	tables, err := s.stores.ListTables(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

type tableRequest struct {
	SpaceID string `json:"space_id"`
	Label   string `json:"label"`
	Active  *bool  `json:"active"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	table, err := s.stores.CreateTable(r.Context(), &models.Table{
		SpaceID: req.SpaceID,
		Label:   req.Label,
		X:       req.X,
		Y:       req.Y,
		Width:   req.Width,
		Height:  req.Height,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

func (s *Server) handleUpdateTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	table := &models.Table{
		ID:      r.PathValue("id"),
		SpaceID: req.SpaceID,
		Label:   req.Label,
		Active:  active,
		X:       req.X,
		Y:       req.Y,
		Width:   req.Width,
		Height:  req.Height,
	}
	if err := s.stores.UpdateTable(r.Context(), table); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	if err := s.stores.DeleteTable(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
