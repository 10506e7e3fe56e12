package httpapi

import (
	"net/http"
	"time"

	"github.com/tableorderhq/tableorder/internal/server/repositories/health"
)

func (s *Server) handleHealthDatabase(w http.ResponseWriter, r *http.Request) {
	report, err := s.health.DatabaseCounts(r.Context(), true)
	if err != nil {
		s.logger.Error(r.Context(), "database health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":    "error",
			"tables":    []health.TableCount{},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealthDatabaseSimple(w http.ResponseWriter, r *http.Request) {
	report, err := s.health.DatabaseCounts(r.Context(), false)
	if err != nil {
		// lenient mode only fails when the report itself cannot be built
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":    "error",
			"tables":    []health.TableCount{},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, report)
}
