package repository

import (
	"context"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListGuestByEmail(ctx context.Context, email string) ([]model.Order, error)
	// LinkUser attaches a user to a guest order. The write is conditional on
	// the order still being unlinked; it reports whether a row was updated.
	LinkUser(ctx context.Context, orderID, userID int64) (bool, error)
}
