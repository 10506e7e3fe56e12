package models

import "time"

// Order statuses. Transitions are monotone: pending and paid may move to
// cancelled; cancelled is terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Payment methods accepted at the register.
const (
	PaymentMethodCard   = "card"
	PaymentMethodCash   = "cash"
	PaymentMethodCoupon = "coupon"
)

// Order is a submitted table order.
type Order struct {
	ID        string
	Number    string // human-facing, e.g. O-2025-0001
	StoreID   string
	TableID   string
	TableName string
	Status    string
	Total     int64
	Method    string // set once paid
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItem
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        string
	OrderID   string
	MenuID    string
	Name      string
	UnitPrice int64
	Quantity  int
	Options   []OrderItemOption
}

// OrderItemOption records a chosen option on an order line.
type OrderItemOption struct {
	ID          string
	OrderItemID string
	ChoiceID    string
	Name        string
	PriceDelta  int64
}

// Payment records the settlement of an order.
type Payment struct {
	ID        string
	OrderID   string
	Method    string
	Amount    int64
	CreatedAt time.Time
}
