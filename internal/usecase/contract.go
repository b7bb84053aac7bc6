package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/domain/repository"
)

// ContractUseCase tracks designer onboarding contracts against the
// e-signature provider's envelope lifecycle.
type ContractUseCase struct {
	contracts repository.ContractRepository
}

// NewContractUseCase constructs ContractUseCase.
func NewContractUseCase(contracts repository.ContractRepository) *ContractUseCase {
	return &ContractUseCase{contracts: contracts}
}

// Create stores a draft contract for a designer.
func (u *ContractUseCase) Create(ctx context.Context, name, email string) (*model.Contract, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}
	if !ValidateEmail(email) {
		return nil, domainErrors.ErrInvalidEmail
	}
	return u.contracts.Create(ctx, name, email)
}

// Get returns the contract by identifier.
func (u *ContractUseCase) Get(ctx context.Context, id int64) (*model.Contract, error) {
	return u.contracts.GetByID(ctx, id)
}

// MarkSent records the provider envelope reference after dispatch.
func (u *ContractUseCase) MarkSent(ctx context.Context, id int64, envelopeID string) (*model.Contract, error) {
	return u.contracts.MarkSent(ctx, id, envelopeID)
}

// ListSent returns contracts awaiting a signature decision.
func (u *ContractUseCase) ListSent(ctx context.Context, limit int) ([]model.Contract, error) {
	return u.contracts.ListSent(ctx, limit)
}

// ApplyEnvelopeState folds the provider's envelope state into the contract
// status. Intermediate states (sent, viewed) leave the row untouched.
func (u *ContractUseCase) ApplyEnvelopeState(ctx context.Context, id int64, state model.EnvelopeState) error {
	switch state {
	case model.EnvelopeStateSigned:
		return u.contracts.SetStatus(ctx, id, model.ContractStatusSigned)
	case model.EnvelopeStateDeclined:
		return u.contracts.SetStatus(ctx, id, model.ContractStatusDeclined)
	default:
		return nil
	}
}
