package usecase

import (
	"context"
	"time"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/domain/repository"
)

// rewardOffer describes the redemption catalog entry for a reward type.
type rewardOffer struct {
	PointCost int64
	AmountOff float64
	TTL       time.Duration
}

var rewardCatalog = map[model.RewardType]rewardOffer{
	model.RewardTypeDiscount:     {PointCost: 500, AmountOff: 25, TTL: 30 * 24 * time.Hour},
	model.RewardTypeFreeShipping: {PointCost: 200, AmountOff: 9.95, TTL: 30 * 24 * time.Hour},
	model.RewardTypeBirthdayGift: {PointCost: 0, AmountOff: 15, TTL: 45 * 24 * time.Hour},
}

// RewardUseCase enforces the reward lifecycle and redemption rules.
type RewardUseCase struct {
	members repository.MemberRepository
	rewards repository.RewardRepository
	now     func() time.Time
}

// NewRewardUseCase constructs RewardUseCase.
func NewRewardUseCase(members repository.MemberRepository, rewards repository.RewardRepository) *RewardUseCase {
	return &RewardUseCase{members: members, rewards: rewards, now: time.Now}
}

// Redeem spends points for a reward of the given type. Birthday gifts are
// granted, not redeemed.
func (u *RewardUseCase) Redeem(ctx context.Context, userID int64, rewardType model.RewardType) (*model.Reward, error) {
	if !model.ValidRewardType(rewardType) || rewardType == model.RewardTypeBirthdayGift {
		return nil, domainErrors.ErrInvalidRewardType
	}

	member, err := u.members.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	offer := rewardCatalog[rewardType]
	expiresAt := u.now().Add(offer.TTL)
	return u.rewards.Redeem(ctx, member.ID, rewardType, offer.PointCost, offer.AmountOff, expiresAt)
}

// GrantBirthdayGift issues the zero-cost birthday reward. It is granted only
// during the member's birthday month and at most once per calendar year.
func (u *RewardUseCase) GrantBirthdayGift(ctx context.Context, userID int64) (*model.Reward, error) {
	member, err := u.members.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if member.BirthMonth == 0 || int(now.Month()) != member.BirthMonth {
		return nil, domainErrors.ErrNotBirthdayMonth
	}

	existing, err := u.rewards.ListByMember(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	for _, rw := range existing {
		if rw.Type == model.RewardTypeBirthdayGift && rw.RedeemedAt.Year() == now.Year() {
			return nil, domainErrors.ErrGiftAlreadyGranted
		}
	}

	offer := rewardCatalog[model.RewardTypeBirthdayGift]
	return u.rewards.Redeem(ctx, member.ID, model.RewardTypeBirthdayGift, 0, offer.AmountOff, now.Add(offer.TTL))
}

// Transition moves a reward to the requested lifecycle status. Validation of
// the status value happens before any storage access; the used_at stamp is
// applied by the single-statement update in storage and cannot be bypassed.
// A reward that is logically expired cannot be used, even if the sweeper has
// not written the expired state back yet.
func (u *RewardUseCase) Transition(ctx context.Context, rewardID int64, status model.RewardStatus) (*model.Reward, error) {
	if !model.ValidRewardStatus(status) {
		return nil, domainErrors.ErrInvalidRewardStatus
	}
	if status == model.RewardStatusUsed {
		current, err := u.rewards.GetByID(ctx, rewardID)
		if err != nil {
			return nil, err
		}
		if current.Status != model.RewardStatusUsed && current.EffectiveStatus(u.now()) == model.RewardStatusExpired {
			return nil, domainErrors.ErrRewardExpired
		}
	}
	return u.rewards.UpdateStatus(ctx, rewardID, status)
}

// ListByUser returns the member's reward ledger with lazy expiry applied to
// the returned view: an active reward past its expiry reads as expired even
// before the sweeper persists that state.
func (u *RewardUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Reward, error) {
	member, err := u.members.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rewards, err := u.rewards.ListByMember(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	for i := range rewards {
		rewards[i].Status = rewards[i].EffectiveStatus(now)
	}
	return rewards, nil
}

// ExpireBatch persists expiry for a batch of lapsed active rewards.
func (u *RewardUseCase) ExpireBatch(ctx context.Context, limit int) ([]model.Reward, error) {
	return u.rewards.SelectExpiredBatch(ctx, limit)
}
