package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	testhelpers "github.com/atelierhq/atelier/internal/test"
	"github.com/atelierhq/atelier/internal/usecase"
)

type facadeFixture struct {
	facade    *StorefrontFacade
	users     *testhelpers.UserRepositoryStub
	members   *testhelpers.MemberRepositoryStub
	rewards   *testhelpers.RewardRepositoryStub
	orders    *testhelpers.OrderRepositoryStub
	contracts *testhelpers.ContractRepositoryStub
	envelopes *testhelpers.EnvelopeClientStub
}

func newFacade() *facadeFixture {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	members := &testhelpers.MemberRepositoryStub{}
	membershipUC := usecase.NewMembershipUseCase(members)
	rewards := &testhelpers.RewardRepositoryStub{}
	rewardUC := usecase.NewRewardUseCase(members, rewards)

	orders := &testhelpers.OrderRepositoryStub{}
	orderUC := usecase.NewOrderUseCase(orders)
	reconcileUC := usecase.NewReconcileUseCase(orders, logger)

	contracts := &testhelpers.ContractRepositoryStub{}
	contractUC := usecase.NewContractUseCase(contracts)
	envelopes := &testhelpers.EnvelopeClientStub{}

	facade := NewStorefrontFacade(authUC, membershipUC, rewardUC, orderUC, reconcileUC, contractUC, envelopes)
	return &facadeFixture{
		facade:    facade,
		users:     users,
		members:   members,
		rewards:   rewards,
		orders:    orders,
		contracts: contracts,
		envelopes: envelopes,
	}
}

func TestStorefrontFacadeRegisterEnrollsMembership(t *testing.T) {
	fx := newFacade()
	token, err := fx.facade.Register(context.Background(), "ada@example.com", "pass", 6, 15)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := fx.users.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if fx.members.Member == nil || fx.members.Member.UserID != stored.ID {
		t.Fatalf("membership not enrolled: %+v", fx.members.Member)
	}
	if fx.members.Member.BirthMonth != 6 || fx.members.Member.BirthDay != 15 {
		t.Fatalf("birthday not stored: %+v", fx.members.Member)
	}
}

func TestStorefrontFacadeAuthenticateReconcilesGuestOrders(t *testing.T) {
	fx := newFacade()
	if _, err := fx.facade.Register(context.Background(), "ada@example.com", "pass", 0, 0); err != nil {
		t.Fatalf("register: %v", err)
	}

	fx.orders.Guest = []model.Order{
		{ID: 1, Email: "ada@example.com", Number: "ATL-A"},
		{ID: 2, Email: "ada@example.com", Number: "ATL-B"},
	}

	token, linked, err := fx.facade.Authenticate(context.Background(), "ada@example.com", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}
	if linked.Linked != 2 || linked.Total != 2 {
		t.Fatalf("unexpected reconcile result: %+v", linked)
	}
	if len(fx.orders.LinkCalls) != 2 {
		t.Fatalf("expected two link calls, got %d", len(fx.orders.LinkCalls))
	}
}

func TestStorefrontFacadeParseToken(t *testing.T) {
	fx := newFacade()
	id, err := fx.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestStorefrontFacadeClaimOrders(t *testing.T) {
	fx := newFacade()
	if _, err := fx.facade.Register(context.Background(), "ada@example.com", "pass", 0, 0); err != nil {
		t.Fatalf("register: %v", err)
	}
	stored, _ := fx.users.GetByEmail(context.Background(), "ada@example.com")
	fx.orders.Guest = []model.Order{{ID: 1, Email: "ada@example.com", Number: "ATL-A"}}

	result, err := fx.facade.ClaimOrders(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("claim returned error: %v", err)
	}
	if result.Linked != 1 {
		t.Fatalf("expected one linked order, got %+v", result)
	}

	if _, err := fx.facade.ClaimOrders(context.Background(), 12345); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestStorefrontFacadeOrderTracking(t *testing.T) {
	fx := newFacade()
	placed, err := fx.facade.PlaceGuestOrder(context.Background(), "ada@example.com",
		[]model.ItemLine{{SKU: "TOTE-01", Name: "Canvas tote", Quantity: 1, Price: 40}})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	found, err := fx.facade.OrderByNumber(context.Background(), placed.Number)
	if err != nil {
		t.Fatalf("order lookup returned error: %v", err)
	}
	if found.ID != placed.ID {
		t.Fatalf("unexpected order: %+v", found)
	}

	if _, err := fx.facade.OrderByNumber(context.Background(), "ATL-UNKNOWN"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStorefrontFacadeRewardFlow(t *testing.T) {
	fx := newFacade()
	fx.members.Member = &model.Member{ID: 3, UserID: 7, Points: 600}

	reward, err := fx.facade.RedeemReward(context.Background(), 7, model.RewardTypeDiscount)
	if err != nil {
		t.Fatalf("redeem returned error: %v", err)
	}
	if reward.Type != model.RewardTypeDiscount {
		t.Fatalf("unexpected reward: %+v", reward)
	}

	fx.rewards.Rewards = []model.Reward{{ID: 5, MemberID: 3, Status: model.RewardStatusActive, ExpiresAt: time.Now().Add(time.Hour)}}
	updated, err := fx.facade.TransitionReward(context.Background(), 5, model.RewardStatusUsed)
	if err != nil {
		t.Fatalf("transition returned error: %v", err)
	}
	if updated.Status != model.RewardStatusUsed || updated.UsedAt == nil {
		t.Fatalf("unexpected transition result: %+v", updated)
	}
}

func TestStorefrontFacadeContractFlow(t *testing.T) {
	fx := newFacade()

	contract, err := fx.facade.CreateAndSendContract(context.Background(), "Mara Ellis", "mara@atelier.studio")
	if err != nil {
		t.Fatalf("create and send returned error: %v", err)
	}
	if contract.Status != model.ContractStatusSent || contract.EnvelopeID != "env-stub" {
		t.Fatalf("unexpected contract: %+v", contract)
	}

	if err := fx.facade.ApplyEnvelopeState(context.Background(), contract.ID, model.EnvelopeStateSigned); err != nil {
		t.Fatalf("apply state returned error: %v", err)
	}
	stored, err := fx.facade.Contract(context.Background(), contract.ID)
	if err != nil {
		t.Fatalf("contract lookup returned error: %v", err)
	}
	if stored.Status != model.ContractStatusSigned {
		t.Fatalf("expected signed contract, got %+v", stored)
	}
}

func TestStorefrontFacadeContractSendFailure(t *testing.T) {
	fx := newFacade()
	fx.envelopes.SendFn = func(context.Context, string, string, string) (*model.Envelope, error) {
		return nil, errors.New("provider down")
	}

	if _, err := fx.facade.CreateAndSendContract(context.Background(), "Mara Ellis", "mara@atelier.studio"); err == nil {
		t.Fatal("expected error when provider rejects dispatch")
	}
	if len(fx.contracts.Contracts) != 1 || fx.contracts.Contracts[0].Status != model.ContractStatusDraft {
		t.Fatalf("expected draft row to remain, got %+v", fx.contracts.Contracts)
	}
}
