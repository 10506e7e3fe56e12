package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLedgerFilterFromQuery_FullRange(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/orders?query=window&status=paid&method=card&from=2026-08-01&to=2026-08-02", nil)
	f := ledgerFilterFromQuery(req)

	assert.Equal(t, "window", f.Query)
	assert.Equal(t, "paid", f.Status)
	assert.Equal(t, "card", f.Method)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), f.From)
	assert.Equal(t, time.Date(2026, 8, 2, 23, 59, 59, 0, time.UTC), f.To)
}

func TestLedgerFilterFromQuery_HalfRangeIgnored(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/orders?from=2026-08-01", nil)
	f := ledgerFilterFromQuery(req)

	assert.True(t, f.From.IsZero())
	assert.True(t, f.To.IsZero())
}

func TestLedgerFilterFromQuery_BadDateIgnored(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/orders?from=yesterday&to=2026-08-02", nil)
	f := ledgerFilterFromQuery(req)

	assert.True(t, f.From.IsZero())
	assert.True(t, f.To.IsZero())
}
