package repository

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// MemberRepository manages loyalty membership state.
type MemberRepository interface {
	Create(ctx context.Context, userID int64, birthMonth, birthDay int) (*model.Member, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Member, error)
	// AccrueSpend atomically adds points and lifetime spend and persists the
	// recomputed tier in a single transaction.
	AccrueSpend(ctx context.Context, userID int64, points int64, spend float64, tier model.Tier) (*model.Member, error)
}
