package repository

import (
	"context"
	"time"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// RewardRepository records reward grants and their lifecycle.
type RewardRepository interface {
	// Redeem deducts the point cost from the member's balance and inserts the
	// reward within one transaction.
	Redeem(ctx context.Context, memberID int64, rewardType model.RewardType, pointCost int64, amountOff float64, expiresAt time.Time) (*model.Reward, error)
	GetByID(ctx context.Context, id int64) (*model.Reward, error)
	ListByMember(ctx context.Context, memberID int64) ([]model.Reward, error)
	// UpdateStatus performs the lifecycle transition as one atomic write,
	// stamping used_at on the first transition into used.
	UpdateStatus(ctx context.Context, id int64, status model.RewardStatus) (*model.Reward, error)
	// SelectExpiredBatch claims up to limit active rewards past their expiry
	// and marks them expired.
	SelectExpiredBatch(ctx context.Context, limit int) ([]model.Reward, error)
}
