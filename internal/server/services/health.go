package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/tableorderhq/tableorder/internal/server/repositories/health"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
)

// HealthService reports per-table row counts for the database health
// endpoints.
type HealthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHealthService(db *sql.DB, m repomanager.RepositoryManager) *HealthService {
	return &HealthService{db: db, repomanager: m}
}

// DatabaseReport is the health endpoints' response body.
type DatabaseReport struct {
	Status    string              `json:"status"`
	Tables    []health.TableCount `json:"tables"`
	Timestamp string              `json:"timestamp"`
}

// DatabaseCounts builds the report. Strict mode fails on the first
// unreadable table; lenient mode reports it with count 0 instead.
func (s *HealthService) DatabaseCounts(ctx context.Context, strict bool) (*DatabaseReport, error) {
	counts, err := s.repomanager.Health(s.db).Counts(ctx, strict)
	if err != nil {
		return nil, err
	}
	return &DatabaseReport{
		Status:    "ok",
		Tables:    counts,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
