package test

import (
	"context"
	"time"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MemberRepositoryStub lets tests control membership state.
type MemberRepositoryStub struct {
	CreateFn      func(context.Context, int64, int, int) (*model.Member, error)
	GetByUserIDFn func(context.Context, int64) (*model.Member, error)
	AccrueSpendFn func(context.Context, int64, int64, float64, model.Tier) (*model.Member, error)

	Member      *model.Member
	AccrueCalls []MemberAccrueCall
}

// MemberAccrueCall captures a single AccrueSpend invocation.
type MemberAccrueCall struct {
	UserID int64
	Points int64
	Spend  float64
	Tier   model.Tier
}

// Create returns the configured member or delegates to an override.
func (s *MemberRepositoryStub) Create(ctx context.Context, userID int64, birthMonth, birthDay int) (*model.Member, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, birthMonth, birthDay)
	}
	member := &model.Member{ID: 1, UserID: userID, Tier: model.TierMember, BirthMonth: birthMonth, BirthDay: birthDay}
	s.Member = member
	return member, nil
}

// GetByUserID returns the stored member or not found.
func (s *MemberRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.Member, error) {
	if s.GetByUserIDFn != nil {
		return s.GetByUserIDFn(ctx, userID)
	}
	if s.Member == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Member, nil
}

// AccrueSpend records the invocation and applies it to the stored member.
func (s *MemberRepositoryStub) AccrueSpend(ctx context.Context, userID int64, points int64, spend float64, tier model.Tier) (*model.Member, error) {
	if s.AccrueSpendFn != nil {
		return s.AccrueSpendFn(ctx, userID, points, spend, tier)
	}
	s.AccrueCalls = append(s.AccrueCalls, MemberAccrueCall{UserID: userID, Points: points, Spend: spend, Tier: tier})
	if s.Member == nil {
		return nil, domainErrors.ErrNotFound
	}
	s.Member.Points += points
	s.Member.LifetimeSpend += spend
	s.Member.Tier = tier
	return s.Member, nil
}

// RewardRepositoryStub allows tests to customize reward behaviour.
type RewardRepositoryStub struct {
	RedeemFn             func(context.Context, int64, model.RewardType, int64, float64, time.Time) (*model.Reward, error)
	GetByIDFn            func(context.Context, int64) (*model.Reward, error)
	ListByMemberFn       func(context.Context, int64) ([]model.Reward, error)
	UpdateStatusFn       func(context.Context, int64, model.RewardStatus) (*model.Reward, error)
	SelectExpiredBatchFn func(context.Context, int) ([]model.Reward, error)

	Rewards     []model.Reward
	RedeemCalls []RewardRedeemCall
}

// RewardRedeemCall captures a single Redeem invocation.
type RewardRedeemCall struct {
	MemberID  int64
	Type      model.RewardType
	PointCost int64
	AmountOff float64
	ExpiresAt time.Time
}

// Redeem records the call and returns a synthetic reward.
func (s *RewardRepositoryStub) Redeem(ctx context.Context, memberID int64, rewardType model.RewardType, pointCost int64, amountOff float64, expiresAt time.Time) (*model.Reward, error) {
	s.RedeemCalls = append(s.RedeemCalls, RewardRedeemCall{
		MemberID: memberID, Type: rewardType, PointCost: pointCost, AmountOff: amountOff, ExpiresAt: expiresAt,
	})
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, memberID, rewardType, pointCost, amountOff, expiresAt)
	}
	return &model.Reward{
		ID: int64(len(s.RedeemCalls)), MemberID: memberID, Type: rewardType,
		PointCost: pointCost, AmountOff: amountOff,
		Status: model.RewardStatusActive, RedeemedAt: time.Now(), ExpiresAt: expiresAt,
	}, nil
}

// GetByID returns the matching reward from the configured slice.
func (s *RewardRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Reward, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, r := range s.Rewards {
		if r.ID == id {
			reward := r
			return &reward, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByMember returns rewards from the configured slice.
func (s *RewardRepositoryStub) ListByMember(ctx context.Context, memberID int64) ([]model.Reward, error) {
	if s.ListByMemberFn != nil {
		return s.ListByMemberFn(ctx, memberID)
	}
	return s.Rewards, nil
}

// UpdateStatus applies the transition to the stored reward.
func (s *RewardRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.RewardStatus) (*model.Reward, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	for i := range s.Rewards {
		if s.Rewards[i].ID == id {
			s.Rewards[i].Status = status
			if status == model.RewardStatusUsed && s.Rewards[i].UsedAt == nil {
				now := time.Now()
				s.Rewards[i].UsedAt = &now
			}
			reward := s.Rewards[i]
			return &reward, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// SelectExpiredBatch returns the configured batch.
func (s *RewardRepositoryStub) SelectExpiredBatch(ctx context.Context, limit int) ([]model.Reward, error) {
	if s.SelectExpiredBatchFn != nil {
		return s.SelectExpiredBatchFn(ctx, limit)
	}
	return nil, nil
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateFn           func(context.Context, *model.Order) (*model.Order, error)
	GetByNumberFn      func(context.Context, string) (*model.Order, error)
	ListByUserFn       func(context.Context, int64) ([]model.Order, error)
	ListGuestByEmailFn func(context.Context, string) ([]model.Order, error)
	LinkUserFn         func(context.Context, int64, int64) (bool, error)

	Orders    []model.Order
	Guest     []model.Order
	LinkCalls []OrderLinkCall
}

// OrderLinkCall captures a single LinkUser invocation.
type OrderLinkCall struct {
	OrderID int64
	UserID  int64
}

// Create tracks the order and returns it with an identifier assigned.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.ID = int64(len(s.Orders) + 1)
	created.PlacedAt = time.Now()
	s.Orders = append(s.Orders, created)
	return &created, nil
}

// GetByNumber returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	for _, o := range s.Orders {
		if o.Number == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from the configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// ListGuestByEmail returns configured guest orders. The exact-match filter
// mirrors the equality predicate of the real query.
func (s *OrderRepositoryStub) ListGuestByEmail(ctx context.Context, email string) ([]model.Order, error) {
	if s.ListGuestByEmailFn != nil {
		return s.ListGuestByEmailFn(ctx, email)
	}
	var matched []model.Order
	for _, o := range s.Guest {
		if o.Email == email {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// LinkUser records the invocation and reports the row as linked.
func (s *OrderRepositoryStub) LinkUser(ctx context.Context, orderID, userID int64) (bool, error) {
	s.LinkCalls = append(s.LinkCalls, OrderLinkCall{OrderID: orderID, UserID: userID})
	if s.LinkUserFn != nil {
		return s.LinkUserFn(ctx, orderID, userID)
	}
	return true, nil
}

// ContractRepositoryStub stores designer contracts for tests.
type ContractRepositoryStub struct {
	CreateFn    func(context.Context, string, string) (*model.Contract, error)
	GetByIDFn   func(context.Context, int64) (*model.Contract, error)
	MarkSentFn  func(context.Context, int64, string) (*model.Contract, error)
	ListSentFn  func(context.Context, int) ([]model.Contract, error)
	SetStatusFn func(context.Context, int64, model.ContractStatus) error

	Contracts   []model.Contract
	StatusCalls []ContractStatusCall
}

// ContractStatusCall captures a single SetStatus invocation.
type ContractStatusCall struct {
	ID     int64
	Status model.ContractStatus
}

// Create stores a draft contract.
func (s *ContractRepositoryStub) Create(ctx context.Context, name, email string) (*model.Contract, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, email)
	}
	contract := model.Contract{
		ID: int64(len(s.Contracts) + 1), DesignerName: name, DesignerEmail: email,
		Status: model.ContractStatusDraft, CreatedAt: time.Now(),
	}
	s.Contracts = append(s.Contracts, contract)
	return &contract, nil
}

// GetByID returns the matching contract from the configured slice.
func (s *ContractRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Contract, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, c := range s.Contracts {
		if c.ID == id {
			contract := c
			return &contract, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// MarkSent stamps the envelope reference on the stored contract.
func (s *ContractRepositoryStub) MarkSent(ctx context.Context, id int64, envelopeID string) (*model.Contract, error) {
	if s.MarkSentFn != nil {
		return s.MarkSentFn(ctx, id, envelopeID)
	}
	for i := range s.Contracts {
		if s.Contracts[i].ID == id {
			now := time.Now()
			s.Contracts[i].Status = model.ContractStatusSent
			s.Contracts[i].EnvelopeID = envelopeID
			s.Contracts[i].SentAt = &now
			contract := s.Contracts[i]
			return &contract, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListSent returns contracts currently in sent status.
func (s *ContractRepositoryStub) ListSent(ctx context.Context, limit int) ([]model.Contract, error) {
	if s.ListSentFn != nil {
		return s.ListSentFn(ctx, limit)
	}
	var sent []model.Contract
	for _, c := range s.Contracts {
		if c.Status == model.ContractStatusSent {
			sent = append(sent, c)
			if limit > 0 && len(sent) == limit {
				break
			}
		}
	}
	return sent, nil
}

// SetStatus records the invocation and applies it to the stored contract.
func (s *ContractRepositoryStub) SetStatus(ctx context.Context, id int64, status model.ContractStatus) error {
	s.StatusCalls = append(s.StatusCalls, ContractStatusCall{ID: id, Status: status})
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status)
	}
	for i := range s.Contracts {
		if s.Contracts[i].ID == id {
			s.Contracts[i].Status = status
			return nil
		}
	}
	return domainErrors.ErrNotFound
}
