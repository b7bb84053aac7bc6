package dto

import "time"

// RewardResponse describes a reward ledger entry.
type RewardResponse struct {
	ID         int64      `json:"id"`
	Type       string     `json:"type"`
	PointCost  int64      `json:"point_cost"`
	AmountOff  float64    `json:"amount_off"`
	Status     string     `json:"status"`
	RedeemedAt time.Time  `json:"redeemed_at"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// RedeemRequest describes a point redemption payload.
type RedeemRequest struct {
	Type string `json:"type"`
}

// TransitionRequest describes a reward lifecycle transition payload.
type TransitionRequest struct {
	Status string `json:"status"`
}
