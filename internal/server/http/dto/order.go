package dto

import "time"

// ItemLine is a purchased position within a checkout payload.
type ItemLine struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CheckoutRequest describes a guest checkout payload.
type CheckoutRequest struct {
	Email string     `json:"email"`
	Items []ItemLine `json:"items"`
}

// OrderResponse describes a single order in purchase history.
type OrderResponse struct {
	Number   string     `json:"number"`
	Total    float64    `json:"total"`
	Items    []ItemLine `json:"items"`
	PlacedAt time.Time  `json:"placed_at"`
}

// ClaimResponse reports the outcome of an explicit guest-order claim.
type ClaimResponse struct {
	LinkedOrders int `json:"linked_orders"`
	GuestOrders  int `json:"guest_orders"`
}
