// Package draft implements the in-progress order being assembled for a
// table before submission.
package draft

import "sync"

// Line is one selected menu item with a quantity.
type Line struct {
	MenuID    string `json:"menu_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Draft is the unsaved item list for a single table. Lines are keyed by
// menu item identity: adding an already-present item increments its
// quantity rather than appending a duplicate line. Insertion order is
// preserved for display.
//
// Draft itself is not goroutine-safe; the Registry serializes access.
type Draft struct {
	lines []Line
}

// Add appends a new line with quantity 1, or increments the quantity of an
// existing line for the same menu item.
func (d *Draft) Add(menuID, name string, unitPrice int64) {
	for i := range d.lines {
		if d.lines[i].MenuID == menuID {
			d.lines[i].Quantity++
			return
		}
	}
	d.lines = append(d.lines, Line{MenuID: menuID, Name: name, UnitPrice: unitPrice, Quantity: 1})
}

// Remove deletes the line for the menu item entirely, regardless of its
// quantity. Removing an absent item is a no-op.
func (d *Draft) Remove(menuID string) {
	for i := range d.lines {
		if d.lines[i].MenuID == menuID {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity, clamped to a minimum of 1. There is
// no upper bound. Setting quantity on an absent item is a no-op.
func (d *Draft) SetQuantity(menuID string, n int) {
	if n < 1 {
		n = 1
	}
	for i := range d.lines {
		if d.lines[i].MenuID == menuID {
			d.lines[i].Quantity = n
			return
		}
	}
}

// Clear empties the draft. Used after successful submission or explicit
// discard.
func (d *Draft) Clear() {
	d.lines = nil
}

// Lines returns a copy of the current lines.
func (d *Draft) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Empty reports whether the draft has no lines.
func (d *Draft) Empty() bool {
	return len(d.lines) == 0
}

// Total is the sum of unit price × quantity over the current lines. It is
// recomputed on every call and never cached separately, so it cannot
// diverge from the lines.
func (d *Draft) Total() int64 {
	var total int64
	for _, l := range d.lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// Registry holds one draft per table, created on first access. It is safe
// for concurrent use by HTTP handlers; no ordering is guaranteed between
// concurrent mutations beyond last-write-wins.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Update runs fn against the table's draft under the registry lock.
func (r *Registry) Update(tableID string, fn func(d *Draft)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[tableID]
	if !ok {
		d = &Draft{}
		r.drafts[tableID] = d
	}
	fn(d)
}

// Snapshot returns the table's current lines and total.
func (r *Registry) Snapshot(tableID string) ([]Line, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[tableID]
	if !ok {
		return nil, 0
	}
	return d.Lines(), d.Total()
}
