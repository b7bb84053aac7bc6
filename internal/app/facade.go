package app

import (
	"context"
	"fmt"

	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/usecase"
)

// EnvelopeProvider is the slice of the e-signature adapter the facade needs.
type EnvelopeProvider interface {
	Send(ctx context.Context, recipientName, recipientEmail, subject string) (*model.Envelope, error)
	Status(ctx context.Context, envelopeID string) (*model.Envelope, error)
}

// StorefrontFacade aggregates use cases behind a single application surface
// consumed by HTTP handlers and background workers.
type StorefrontFacade struct {
	auth       *usecase.AuthUseCase
	membership *usecase.MembershipUseCase
	rewards    *usecase.RewardUseCase
	orders     *usecase.OrderUseCase
	reconcile  *usecase.ReconcileUseCase
	contracts  *usecase.ContractUseCase
	envelopes  EnvelopeProvider
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	membership *usecase.MembershipUseCase,
	rewards *usecase.RewardUseCase,
	orders *usecase.OrderUseCase,
	reconcile *usecase.ReconcileUseCase,
	contracts *usecase.ContractUseCase,
	envelopes EnvelopeProvider,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:       auth,
		membership: membership,
		rewards:    rewards,
		orders:     orders,
		reconcile:  reconcile,
		contracts:  contracts,
		envelopes:  envelopes,
	}
}

// Register creates the user, enrolls membership, and returns an auth token.
func (f *StorefrontFacade) Register(ctx context.Context, email, password string, birthMonth, birthDay int) (string, error) {
	usr, token, err := f.auth.Register(ctx, email, password)
	if err != nil {
		return "", err
	}
	if _, err := f.membership.Enroll(ctx, usr.ID, birthMonth, birthDay); err != nil {
		return "", fmt.Errorf("enroll membership: %w", err)
	}
	return token, nil
}

// Authenticate validates credentials and reconciles guest orders placed with
// the account email, reporting how many were linked.
func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, model.ReconcileResult, error) {
	usr, token, err := f.auth.Authenticate(ctx, email, password)
	if err != nil {
		return "", model.ReconcileResult{}, err
	}
	result, err := f.reconcile.Reconcile(ctx, model.Identity{UserID: usr.ID, Email: usr.Email})
	if err != nil {
		return "", model.ReconcileResult{}, fmt.Errorf("reconcile on login: %w", err)
	}
	return token, result, nil
}

// ParseToken extracts the user ID from a token.
func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

// ClaimOrders reconciles guest orders for an already authenticated user.
func (f *StorefrontFacade) ClaimOrders(ctx context.Context, userID int64) (model.ReconcileResult, error) {
	identity, err := f.auth.Identity(ctx, userID)
	if err != nil {
		return model.ReconcileResult{}, err
	}
	return f.reconcile.Reconcile(ctx, *identity)
}

// PlaceGuestOrder records a guest checkout.
func (f *StorefrontFacade) PlaceGuestOrder(ctx context.Context, email string, items []model.ItemLine) (*model.Order, error) {
	return f.orders.PlaceGuestOrder(ctx, email, items)
}

// Orders returns the purchase history of an authenticated user.
func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

// OrderByNumber resolves an order from its public reference.
func (f *StorefrontFacade) OrderByNumber(ctx context.Context, number string) (*model.Order, error) {
	return f.orders.GetByNumber(ctx, number)
}

// Membership returns loyalty profile for a user.
func (f *StorefrontFacade) Membership(ctx context.Context, userID int64) (*model.Member, error) {
	return f.membership.Profile(ctx, userID)
}

// AccrueSpend records spending against a membership.
func (f *StorefrontFacade) AccrueSpend(ctx context.Context, userID int64, amount float64) (*model.Member, error) {
	return f.membership.AccrueSpend(ctx, userID, amount)
}

// Rewards returns the reward ledger for a user.
func (f *StorefrontFacade) Rewards(ctx context.Context, userID int64) ([]model.Reward, error) {
	return f.rewards.ListByUser(ctx, userID)
}

// RedeemReward spends points for a reward of the given type.
func (f *StorefrontFacade) RedeemReward(ctx context.Context, userID int64, rewardType model.RewardType) (*model.Reward, error) {
	return f.rewards.Redeem(ctx, userID, rewardType)
}

// GrantBirthdayGift issues the annual birthday reward.
func (f *StorefrontFacade) GrantBirthdayGift(ctx context.Context, userID int64) (*model.Reward, error) {
	return f.rewards.GrantBirthdayGift(ctx, userID)
}

// TransitionReward moves a reward through its lifecycle.
func (f *StorefrontFacade) TransitionReward(ctx context.Context, rewardID int64, status model.RewardStatus) (*model.Reward, error) {
	return f.rewards.Transition(ctx, rewardID, status)
}

// ExpireRewards persists expiry for a batch of lapsed rewards.
func (f *StorefrontFacade) ExpireRewards(ctx context.Context, limit int) ([]model.Reward, error) {
	return f.rewards.ExpireBatch(ctx, limit)
}

// CreateAndSendContract creates a designer contract and dispatches it for
// signing; the envelope reference is stored once the provider accepts it.
func (f *StorefrontFacade) CreateAndSendContract(ctx context.Context, name, email string) (*model.Contract, error) {
	contract, err := f.contracts.Create(ctx, name, email)
	if err != nil {
		return nil, err
	}
	envelope, err := f.envelopes.Send(ctx, contract.DesignerName, contract.DesignerEmail, "Designer agreement")
	if err != nil {
		return nil, fmt.Errorf("send contract %d: %w", contract.ID, err)
	}
	return f.contracts.MarkSent(ctx, contract.ID, envelope.ID)
}

// Contract returns the contract by identifier.
func (f *StorefrontFacade) Contract(ctx context.Context, id int64) (*model.Contract, error) {
	return f.contracts.Get(ctx, id)
}

// ContractsForPolling returns sent contracts awaiting a signature decision.
func (f *StorefrontFacade) ContractsForPolling(ctx context.Context, limit int) ([]model.Contract, error) {
	return f.contracts.ListSent(ctx, limit)
}

// CheckEnvelope queries the provider for envelope state.
func (f *StorefrontFacade) CheckEnvelope(ctx context.Context, envelopeID string) (*model.Envelope, error) {
	return f.envelopes.Status(ctx, envelopeID)
}

// ApplyEnvelopeState folds a provider state into the stored contract.
func (f *StorefrontFacade) ApplyEnvelopeState(ctx context.Context, contractID int64, state model.EnvelopeState) error {
	return f.contracts.ApplyEnvelopeState(ctx, contractID, state)
}
