package models

import "time"

// Store is the restaurant profile edited on the store settings screen.
type Store struct {
	ID            string
	OwnerID       string
	Name          string
	Address       string
	Phone         string
	BusinessHours string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Space is a named floor/hall that owns tables ("1F hall", "terrace").
type Space struct {
	ID        string
	StoreID   string
	Name      string
	Position  int
	CreatedAt time.Time
}

// Table is a physical table inside a space. Geometry mirrors the layout
// editor; QRToken is the QR-ordering entry point for this table.
type Table struct {
	ID        string
	SpaceID   string
	StoreID   string
	Label     string
	Active    bool
	X         int
	Y         int
	Width     int
	Height    int
	QRToken   string
	CreatedAt time.Time
}
