package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tableorderhq/tableorder/internal/ledger"
)

const dateParamLayout = "2006-01-02"

// ledgerFilterFromQuery maps the orders page query string to a ledger
// filter. The date range is inclusive over whole days and only applies when
// both ends parse.
func ledgerFilterFromQuery(r *http.Request) ledger.Filter {
	q := r.URL.Query()
	f := ledger.Filter{
		Query:  q.Get("query"),
		Status: q.Get("status"),
		Method: q.Get("method"),
	}

	from, errFrom := time.Parse(dateParamLayout, q.Get("from"))
	to, errTo := time.Parse(dateParamLayout, q.Get("to"))
	if errFrom == nil && errTo == nil {
		f.From = from
		f.To = to.Add(24*time.Hour - time.Second)
	}
	return f
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := s.orders.Ledger(r.Context(), userID, ledgerFilterFromQuery(r), page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	type record struct {
		ID        string `json:"id"`
		Number    string `json:"number"`
		TableName string `json:"table_name"`
		Status    string `json:"status"`
		Method    string `json:"method"`
		Total     int64  `json:"total"`
		OrderedAt string `json:"ordered_at"`
	}
	records := make([]record, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, record{
			ID:        rec.ID,
			Number:    rec.Number,
			TableName: rec.TableName,
			Status:    rec.Status,
			Method:    rec.Method,
			Total:     rec.Total,
			OrderedAt: rec.FormattedTime(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders":      records,
		"page":        result.Page,
		"total_pages": result.TotalPages,
		"total":       result.Total,
	})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.orders.CancelOrder(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
