package repository

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// ContractRepository stores designer contracts and their e-signature state.
type ContractRepository interface {
	Create(ctx context.Context, name, email string) (*model.Contract, error)
	GetByID(ctx context.Context, id int64) (*model.Contract, error)
	MarkSent(ctx context.Context, id int64, envelopeID string) (*model.Contract, error)
	ListSent(ctx context.Context, limit int) ([]model.Contract, error)
	SetStatus(ctx context.Context, id int64, status model.ContractStatus) error
}
