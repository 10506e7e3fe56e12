package httpapi

import (
	"net/http"

	"github.com/tableorderhq/tableorder/internal/draft"
)

type draftResponse struct {
	Lines []draft.Line `json:"lines"`
	Total int64        `json:"total"`
}

func (s *Server) writeDraft(w http.ResponseWriter, tableID string) {
	lines, total := s.orders.Draft(tableID)
	if lines == nil {
		lines = []draft.Line{}
	}
	writeJSON(w, http.StatusOK, draftResponse{Lines: lines, Total: total})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	s.writeDraft(w, r.PathValue("id"))
}

func (s *Server) handleAddDraftItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuID string `json:"menu_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.MenuID == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	tableID := r.PathValue("id")
	if err := s.orders.AddItem(r.Context(), tableID, req.MenuID); err != nil {
		writeServiceError(w, err)
		return
	}
	s.writeDraft(w, tableID)
}

func (s *Server) handleSetDraftQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	tableID := r.PathValue("id")
	s.orders.SetQuantity(tableID, r.PathValue("menu"), req.Quantity)
	s.writeDraft(w, tableID)
}

func (s *Server) handleRemoveDraftItem(w http.ResponseWriter, r *http.Request) {
	tableID := r.PathValue("id")
	s.orders.RemoveItem(tableID, r.PathValue("menu"))
	s.writeDraft(w, tableID)
}

func (s *Server) handleClearDraft(w http.ResponseWriter, r *http.Request) {
	tableID := r.PathValue("id")
	s.orders.ClearDraft(tableID)
	s.writeDraft(w, tableID)
}

func (s *Server) writePaymentState(w http.ResponseWriter, tableID string) {
	stage, method, amount, canPay := s.orders.PaymentState(tableID)
	writeJSON(w, http.StatusOK, map[string]any{
		"stage":   stage,
		"method":  method,
		"amount":  amount,
		"can_pay": canPay,
	})
}

func (s *Server) handleSelectMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	tableID := r.PathValue("id")
	if err := s.orders.SelectMethod(tableID, req.Method); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	s.writePaymentState(w, tableID)
}

func (s *Server) handleEnterAmount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount string `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	tableID := r.PathValue("id")
	if err := s.orders.EnterAmount(tableID, req.Amount); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	s.writePaymentState(w, tableID)
}

func (s *Server) handleCancelPayment(w http.ResponseWriter, r *http.Request) {
	tableID := r.PathValue("id")
	if err := s.orders.CancelPayment(tableID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	s.writePaymentState(w, tableID)
}

func (s *Server) handleSubmitPayment(w http.ResponseWriter, r *http.Request) {
	order, err := s.orders.SubmitPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     order.ID,
		"number": order.Number,
		"status": order.Status,
		"method": order.Method,
		"total":  order.Total,
	})
}
