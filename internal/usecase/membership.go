package usecase

import (
	"context"
	"math"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/domain/repository"
)

// Lifetime annual spend thresholds for tier upgrades.
const (
	TierPlusThreshold    = 500
	TierPremierThreshold = 1500
)

// TierForSpend maps lifetime spend to the tier it qualifies for.
func TierForSpend(spend float64) model.Tier {
	switch {
	case spend >= TierPremierThreshold:
		return model.TierPremier
	case spend >= TierPlusThreshold:
		return model.TierPlus
	default:
		return model.TierMember
	}
}

// MembershipUseCase manages loyalty program membership state.
type MembershipUseCase struct {
	members repository.MemberRepository
}

// NewMembershipUseCase constructs MembershipUseCase.
func NewMembershipUseCase(members repository.MemberRepository) *MembershipUseCase {
	return &MembershipUseCase{members: members}
}

// Enroll creates membership for a freshly registered user. Birthday is
// optional; zero values mean it was not provided.
func (u *MembershipUseCase) Enroll(ctx context.Context, userID int64, birthMonth, birthDay int) (*model.Member, error) {
	if birthMonth < 0 || birthMonth > 12 || birthDay < 0 || birthDay > 31 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.members.Create(ctx, userID, birthMonth, birthDay)
}

// Profile returns membership state for a user.
func (u *MembershipUseCase) Profile(ctx context.Context, userID int64) (*model.Member, error) {
	return u.members.GetByUserID(ctx, userID)
}

// AccrueSpend records spending against the membership: points are earned one
// per whole currency unit, lifetime spend grows, and the tier is recomputed
// in the same write. The tier never moves backwards here; downgrades are an
// anniversary-reset concern outside this operation.
func (u *MembershipUseCase) AccrueSpend(ctx context.Context, userID int64, amount float64) (*model.Member, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	member, err := u.members.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newTier := TierForSpend(member.LifetimeSpend + amount)
	if newTier.Rank() < member.Tier.Rank() {
		newTier = member.Tier
	}

	points := int64(math.Floor(amount))
	return u.members.AccrueSpend(ctx, userID, points, amount, newTier)
}
