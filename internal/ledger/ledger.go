// Package ledger filters and paginates the order history shown on the
// orders page. It operates on an in-memory slice already loaded from the
// database; all filters are independent and commute.
package ledger

import (
	"strings"
	"time"
)

// TimeFormat is the display format the query filter matches against.
const TimeFormat = "2006.01.02 15:04"

// PageSize is the fixed number of records per ledger page.
const PageSize = 10

// Record is one order row as the ledger presents it.
type Record struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	TableName string    `json:"table_name"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	Total     int64     `json:"total"`
	OrderedAt time.Time `json:"ordered_at"`
}

// FormattedTime renders the record's timestamp the way the ledger
// displays it.
func (r Record) FormattedTime() string {
	return r.OrderedAt.Format(TimeFormat)
}

// Filter holds the ledger's filter controls. Zero values mean "no
// constraint". The date range applies only when both From and To are set;
// a half-configured range is ignored.
type Filter struct {
	Query  string
	Status string
	Method string
	From   time.Time
	To     time.Time
}

func (f Filter) matches(r Record) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		hay := strings.ToLower(r.Number + " " + r.TableName + " " + r.FormattedTime())
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Method != "" && r.Method != f.Method {
		return false
	}
	if !f.From.IsZero() && !f.To.IsZero() {
		if r.OrderedAt.Before(f.From) || r.OrderedAt.After(f.To) {
			return false
		}
	}
	return true
}

// Apply returns the records that pass every configured filter, preserving
// input order.
func Apply(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Page is one paginated view over filtered records.
type Page struct {
	Records    []Record `json:"records"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Total      int      `json:"total"`
}

// Paginate slices the records into the requested page. Total pages is at
// least 1 even for an empty set, and the requested page is clamped into
// [1, totalPages], so out-of-range requests return the nearest real page.
func Paginate(records []Record, page int) Page {
	n := len(records)
	totalPages := (n + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return Page{
		Records:    records[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      n,
	}
}
