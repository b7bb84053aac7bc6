package handlers

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string, birthMonth, birthDay int) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, model.ReconcileResult, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates checkout and purchase history operations.
type OrderFacade interface {
	PlaceGuestOrder(ctx context.Context, email string, items []model.ItemLine) (*model.Order, error)
	OrderByNumber(ctx context.Context, number string) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	ClaimOrders(ctx context.Context, userID int64) (model.ReconcileResult, error)
}

// MemberFacade provides loyalty membership operations.
type MemberFacade interface {
	Membership(ctx context.Context, userID int64) (*model.Member, error)
	AccrueSpend(ctx context.Context, userID int64, amount float64) (*model.Member, error)
}

// RewardFacade provides reward ledger operations.
type RewardFacade interface {
	Rewards(ctx context.Context, userID int64) ([]model.Reward, error)
	RedeemReward(ctx context.Context, userID int64, rewardType model.RewardType) (*model.Reward, error)
	GrantBirthdayGift(ctx context.Context, userID int64) (*model.Reward, error)
	TransitionReward(ctx context.Context, rewardID int64, status model.RewardStatus) (*model.Reward, error)
}

// ContractFacade provides designer contract operations.
type ContractFacade interface {
	CreateAndSendContract(ctx context.Context, name, email string) (*model.Contract, error)
	Contract(ctx context.Context, id int64) (*model.Contract, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	MemberFacade
	RewardFacade
	ContractFacade
}
