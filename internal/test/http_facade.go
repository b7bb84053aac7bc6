package test

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, int, int) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, model.ReconcileResult, error)
	ParseFn        func(string) (int64, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string, birthMonth, birthDay int) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, birthMonth, birthDay)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, model.ReconcileResult, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", model.ReconcileResult{}, nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// OrderFacadeStub simulates checkout and history facade interactions.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, string, []model.ItemLine) (*model.Order, error)
	TrackFn  func(context.Context, string) (*model.Order, error)
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	ClaimFn  func(context.Context, int64) (model.ReconcileResult, error)
}

// PlaceGuestOrder returns a stored guest order.
func (s OrderFacadeStub) PlaceGuestOrder(ctx context.Context, email string, items []model.ItemLine) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, email, items)
	}
	return &model.Order{ID: 1, Email: email, Number: "ATL-TEST", Items: items}, nil
}

// OrderByNumber returns a synthetic order carrying the requested reference.
func (s OrderFacadeStub) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, number)
	}
	return &model.Order{ID: 1, Email: "guest@example.com", Number: number}, nil
}

// Orders returns configured purchase history.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

// ClaimOrders returns a configured reconciliation result.
func (s OrderFacadeStub) ClaimOrders(ctx context.Context, userID int64) (model.ReconcileResult, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, userID)
	}
	return model.ReconcileResult{}, nil
}

// MemberFacadeStub simulates membership facade interactions.
type MemberFacadeStub struct {
	MembershipFn func(context.Context, int64) (*model.Member, error)
	AccrueFn     func(context.Context, int64, float64) (*model.Member, error)
}

// Membership returns the configured member.
func (s MemberFacadeStub) Membership(ctx context.Context, userID int64) (*model.Member, error) {
	if s.MembershipFn != nil {
		return s.MembershipFn(ctx, userID)
	}
	return &model.Member{ID: 1, UserID: userID, Tier: model.TierMember}, nil
}

// AccrueSpend returns the configured member after accrual.
func (s MemberFacadeStub) AccrueSpend(ctx context.Context, userID int64, amount float64) (*model.Member, error) {
	if s.AccrueFn != nil {
		return s.AccrueFn(ctx, userID, amount)
	}
	return &model.Member{ID: 1, UserID: userID, Tier: model.TierMember, LifetimeSpend: amount}, nil
}

// RewardFacadeStub simulates reward ledger facade interactions.
type RewardFacadeStub struct {
	RewardsFn    func(context.Context, int64) ([]model.Reward, error)
	RedeemFn     func(context.Context, int64, model.RewardType) (*model.Reward, error)
	GrantFn      func(context.Context, int64) (*model.Reward, error)
	TransitionFn func(context.Context, int64, model.RewardStatus) (*model.Reward, error)
}

// Rewards returns the configured ledger.
func (s RewardFacadeStub) Rewards(ctx context.Context, userID int64) ([]model.Reward, error) {
	if s.RewardsFn != nil {
		return s.RewardsFn(ctx, userID)
	}
	return nil, nil
}

// RedeemReward returns a synthetic active reward.
func (s RewardFacadeStub) RedeemReward(ctx context.Context, userID int64, rewardType model.RewardType) (*model.Reward, error) {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, userID, rewardType)
	}
	return &model.Reward{ID: 1, Type: rewardType, Status: model.RewardStatusActive}, nil
}

// GrantBirthdayGift returns a synthetic gift reward.
func (s RewardFacadeStub) GrantBirthdayGift(ctx context.Context, userID int64) (*model.Reward, error) {
	if s.GrantFn != nil {
		return s.GrantFn(ctx, userID)
	}
	return &model.Reward{ID: 1, Type: model.RewardTypeBirthdayGift, Status: model.RewardStatusActive}, nil
}

// TransitionReward applies the requested status to a synthetic reward.
func (s RewardFacadeStub) TransitionReward(ctx context.Context, rewardID int64, status model.RewardStatus) (*model.Reward, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, rewardID, status)
	}
	return &model.Reward{ID: rewardID, Status: status}, nil
}

// ContractFacadeStub simulates designer contract facade interactions.
type ContractFacadeStub struct {
	CreateFn func(context.Context, string, string) (*model.Contract, error)
	GetFn    func(context.Context, int64) (*model.Contract, error)
}

// CreateAndSendContract returns a synthetic sent contract.
func (s ContractFacadeStub) CreateAndSendContract(ctx context.Context, name, email string) (*model.Contract, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, email)
	}
	return &model.Contract{ID: 1, DesignerName: name, DesignerEmail: email, Status: model.ContractStatusSent, EnvelopeID: "env-test"}, nil
}

// Contract returns the configured contract.
func (s ContractFacadeStub) Contract(ctx context.Context, id int64) (*model.Contract, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Contract{ID: id, Status: model.ContractStatusSent}, nil
}

// StorefrontFacadeStub aggregates facade stubs for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	MemberFacadeStub
	RewardFacadeStub
	ContractFacadeStub
}
