package model

import "time"

// Tier describes loyalty program level. Ordering is member < plus < premier.
type Tier string

const (
	TierMember  Tier = "member"
	TierPlus    Tier = "plus"
	TierPremier Tier = "premier"
)

// Rank returns ordinal position of the tier for monotonicity checks.
func (t Tier) Rank() int {
	switch t {
	case TierPlus:
		return 1
	case TierPremier:
		return 2
	default:
		return 0
	}
}

// Member holds loyalty program state for a single user.
type Member struct {
	ID            int64
	UserID        int64
	Tier          Tier
	Points        int64
	LifetimeSpend float64
	BirthMonth    int
	BirthDay      int
	JoinedAt      time.Time
	TierUpdatedAt time.Time
}
