package test

import (
	"context"
	"sync"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// SweeperFacadeStub simulates the application surface used by the reward sweeper.
type SweeperFacadeStub struct {
	sync.Mutex
	Batches  [][]model.Reward
	ExpireFn func(context.Context, int) ([]model.Reward, error)
	Calls    int
}

// ExpireRewards pops the next configured batch or delegates to the override.
func (s *SweeperFacadeStub) ExpireRewards(ctx context.Context, limit int) ([]model.Reward, error) {
	s.Lock()
	defer s.Unlock()
	s.Calls++
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, limit)
	}
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

// EnvelopeClientStub simulates the e-signature provider client.
type EnvelopeClientStub struct {
	SendFn   func(context.Context, string, string, string) (*model.Envelope, error)
	StatusFn func(context.Context, string) (*model.Envelope, error)
}

// Send returns a freshly dispatched envelope.
func (s *EnvelopeClientStub) Send(ctx context.Context, recipientName, recipientEmail, subject string) (*model.Envelope, error) {
	if s.SendFn != nil {
		return s.SendFn(ctx, recipientName, recipientEmail, subject)
	}
	return &model.Envelope{ID: "env-stub", State: model.EnvelopeStateSent}, nil
}

// Status returns the configured envelope state.
func (s *EnvelopeClientStub) Status(ctx context.Context, envelopeID string) (*model.Envelope, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, envelopeID)
	}
	return &model.Envelope{ID: envelopeID, State: model.EnvelopeStateSigned}, nil
}

// EnvelopeStateCall captures a single ApplyEnvelopeState invocation.
type EnvelopeStateCall struct {
	ContractID int64
	State      model.EnvelopeState
}

// PollerFacadeStub simulates the application surface used by the contract poller.
type PollerFacadeStub struct {
	sync.Mutex
	Batches [][]model.Contract
	CheckFn func(context.Context, string) (*model.Envelope, error)
	ApplyFn func(context.Context, int64, model.EnvelopeState) error
	Applied []EnvelopeStateCall
}

// ContractsForPolling pops the next configured batch.
func (s *PollerFacadeStub) ContractsForPolling(ctx context.Context, limit int) ([]model.Contract, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

// CheckEnvelope returns a signed envelope unless overridden.
func (s *PollerFacadeStub) CheckEnvelope(ctx context.Context, envelopeID string) (*model.Envelope, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, envelopeID)
	}
	return &model.Envelope{ID: envelopeID, State: model.EnvelopeStateSigned}, nil
}

// ApplyEnvelopeState records the invocation.
func (s *PollerFacadeStub) ApplyEnvelopeState(ctx context.Context, contractID int64, state model.EnvelopeState) error {
	s.Lock()
	defer s.Unlock()
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, contractID, state)
	}
	s.Applied = append(s.Applied, EnvelopeStateCall{ContractID: contractID, State: state})
	return nil
}
