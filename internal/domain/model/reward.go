package model

import "time"

// RewardType enumerates redeemable benefit kinds.
type RewardType string

const (
	RewardTypeDiscount     RewardType = "discount"
	RewardTypeFreeShipping RewardType = "free_shipping"
	RewardTypeBirthdayGift RewardType = "birthday_gift"
)

// ValidRewardType reports whether the value is a known reward type.
func ValidRewardType(t RewardType) bool {
	switch t {
	case RewardTypeDiscount, RewardTypeFreeShipping, RewardTypeBirthdayGift:
		return true
	}
	return false
}

// RewardStatus describes reward lifecycle. Transitions: active -> used,
// active -> expired. Both used and expired are terminal.
type RewardStatus string

const (
	RewardStatusActive  RewardStatus = "active"
	RewardStatusUsed    RewardStatus = "used"
	RewardStatusExpired RewardStatus = "expired"
)

// ValidRewardStatus reports whether the value is a known reward status.
func ValidRewardStatus(s RewardStatus) bool {
	switch s {
	case RewardStatusActive, RewardStatusUsed, RewardStatusExpired:
		return true
	}
	return false
}

// Reward is a redeemable benefit owned by a member.
type Reward struct {
	ID         int64
	MemberID   int64
	Type       RewardType
	PointCost  int64
	AmountOff  float64
	Status     RewardStatus
	RedeemedAt time.Time
	UsedAt     *time.Time
	ExpiresAt  time.Time
}

// EffectiveStatus returns the status the reward logically has at the given
// moment: an active reward past its expiry is expired even before the
// sweeper writes that state back.
func (r *Reward) EffectiveStatus(now time.Time) RewardStatus {
	if r.Status == RewardStatusActive && r.ExpiresAt.Before(now) {
		return RewardStatusExpired
	}
	return r.Status
}
