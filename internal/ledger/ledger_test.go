package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{ID: "1", Number: "O-2026-0001", TableName: "Window 1", Status: "paid", Method: "card",
			Total: 15000, OrderedAt: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)},
		{ID: "2", Number: "O-2026-0002", TableName: "Patio 3", Status: "cancelled", Method: "cash",
			Total: 8000, OrderedAt: time.Date(2026, 8, 2, 18, 15, 0, 0, time.UTC)},
		{ID: "3", Number: "O-2026-0003", TableName: "Window 2", Status: "pending", Method: "",
			Total: 22000, OrderedAt: time.Date(2026, 8, 3, 9, 5, 0, 0, time.UTC)},
	}
}

func TestApply_QueryMatchesNumberTableAndTime(t *testing.T) {
	recs := sampleRecords()

	byNumber := Apply(recs, Filter{Query: "0002"})
	require.Len(t, byNumber, 1)
	assert.Equal(t, "2", byNumber[0].ID)

	byTable := Apply(recs, Filter{Query: "window"})
	require.Len(t, byTable, 2)

	byTime := Apply(recs, Filter{Query: "2026.08.03"})
	require.Len(t, byTime, 1)
	assert.Equal(t, "3", byTime[0].ID)
}

func TestApply_StatusFilter(t *testing.T) {
	out := Apply([]Record{
		{ID: "1", Number: "O-1", Status: "paid"},
		{ID: "2", Number: "O-2", Status: "cancelled"},
	}, Filter{Status: "cancelled"})
	require.Len(t, out, 1)
	assert.Equal(t, "O-2", out[0].Number)
}

func TestApply_HalfConfiguredDateRangeIgnored(t *testing.T) {
	recs := sampleRecords()
	from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 23, 59, 59, 0, time.UTC)

	assert.Len(t, Apply(recs, Filter{From: from}), 3)
	assert.Len(t, Apply(recs, Filter{To: to}), 3)

	ranged := Apply(recs, Filter{From: from, To: to})
	require.Len(t, ranged, 1)
	assert.Equal(t, "2", ranged[0].ID)
}

func TestApply_FiltersCommute(t *testing.T) {
	recs := sampleRecords()
	f := Filter{Query: "window", Status: "paid", Method: "card"}

	combined := Apply(recs, f)

	staged := Apply(Apply(Apply(recs, Filter{Method: "card"}), Filter{Status: "paid"}), Filter{Query: "window"})
	assert.Equal(t, staged, combined)
	require.Len(t, combined, 1)
	assert.Equal(t, "1", combined[0].ID)
}

func TestPaginate_ClampsPage(t *testing.T) {
	recs := make([]Record, 25)
	for i := range recs {
		recs[i] = Record{ID: fmt.Sprintf("%d", i+1)}
	}

	p := Paginate(recs, 2)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Records, 10)
	assert.Equal(t, "11", p.Records[0].ID)

	last := Paginate(recs, 99)
	assert.Equal(t, 3, last.Page)
	assert.Len(t, last.Records, 5)

	first := Paginate(recs, -1)
	assert.Equal(t, 1, first.Page)
}

func TestPaginate_EmptySet(t *testing.T) {
	p := Paginate(nil, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Records)
	assert.Equal(t, 0, p.Total)
}
