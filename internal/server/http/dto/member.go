package dto

import "time"

// MemberResponse describes loyalty membership state.
type MemberResponse struct {
	Tier          string    `json:"tier"`
	Points        int64     `json:"points"`
	LifetimeSpend float64   `json:"lifetime_spend"`
	JoinedAt      time.Time `json:"joined_at"`
}

// AccrueRequest describes a spend accrual trigger.
type AccrueRequest struct {
	Amount float64 `json:"amount"`
}
