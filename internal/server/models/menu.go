package models

import "time"

// Category groups menu items on the board, in display order.
type Category struct {
	ID        string
	StoreID   string
	Name      string
	Position  int
	CreatedAt time.Time
}

// Menu is a sellable item on the menu board.
type Menu struct {
	ID         string
	StoreID    string
	CategoryID string
	Name       string
	Price      int64 // KRW, whole units
	ImageKey   string
	SoldOut    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OptionGroup bundles selectable choices for a menu item
// (e.g. "shot", "size").
type OptionGroup struct {
	ID        string
	MenuID    string
	Name      string
	Required  bool
	MaxSelect int
	Choices   []OptionChoice
}

// OptionChoice is one pick inside a group; PriceDelta adjusts the line price.
type OptionChoice struct {
	ID         string
	GroupID    string
	Name       string
	PriceDelta int64
}

// Promotion kinds shown on the event-menu screens.
const (
	PromotionEvent  = "event"
	PromotionUpsell = "upsell"
)

// Promotion is an event or upsell recommendation bound to a menu item,
// active inside [StartsAt, EndsAt].
type Promotion struct {
	ID        string
	StoreID   string
	MenuID    string
	Kind      string
	Title     string
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
}
