package model

import "time"

// ItemLine is a single purchased position within an order.
type ItemLine struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order describes a storefront purchase. UserID is nil for guest orders
// until reconciliation links them to an authenticated user.
type Order struct {
	ID       int64
	UserID   *int64
	Email    string
	Number   string
	Total    float64
	Items    []ItemLine
	PlacedAt time.Time
}

// IsGuest reports whether the order still awaits linking to a user.
func (o *Order) IsGuest() bool {
	return o.UserID == nil
}

// ReconcileResult reports how many candidate guest orders were linked.
type ReconcileResult struct {
	Linked int
	Total  int
}
