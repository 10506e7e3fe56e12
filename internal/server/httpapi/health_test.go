package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tableorderhq/tableorder/internal/server/config"
	"github.com/tableorderhq/tableorder/internal/server/repositories/health"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
	"github.com/tableorderhq/tableorder/internal/server/services"
)

func healthTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	rm := repomanager.NewPostgresRepositoryManager()
	return &Server{
		config: cfg,
		logger: testLogger{},
		health: services.NewHealthService(db, rm),
	}, mock
}

func TestHealthDatabase_OK(t *testing.T) {
	s, mock := healthTestServer(t)
	for range health.Tables {
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health/database", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Tables []struct {
			Name  string `json:"name"`
			Count int64  `json:"count"`
		} `json:"tables"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Len(t, body.Tables, len(health.Tables))
	assert.NotEmpty(t, body.Timestamp)
}

func TestHealthDatabase_StrictFailure(t *testing.T) {
	s, mock := healthTestServer(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/api/health/database", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Status string          `json:"status"`
		Tables json.RawMessage `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.JSONEq(t, `[]`, string(body.Tables))
}

func TestHealthDatabaseSimple_DegradesPerTable(t *testing.T) {
	s, mock := healthTestServer(t)
	// first table unreadable, the rest fine
	mock.ExpectQuery("SELECT COUNT").WillReturnError(assert.AnError)
	for i := 1; i < len(health.Tables); i++ {
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health/database-simple", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Tables []struct {
			Name  string `json:"name"`
			Count int64  `json:"count"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Tables, len(health.Tables))
	assert.Equal(t, int64(0), body.Tables[0].Count)
	assert.Equal(t, int64(1), body.Tables[1].Count)
}
