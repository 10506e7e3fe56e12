// Package httpapi exposes the server's HTTP surface: the route guard
// middleware, the JSON handlers for auth, store, menu, point of sale,
// orders, media and health, and the server lifecycle.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tableorderhq/tableorder/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service-layer sentinel errors onto HTTP statuses.
// Unknown errors become a generic 500 so internals never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrEmptyDraft):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrOrderCancelled):
		writeError(w, http.StatusConflict, "order already cancelled")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
