package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/domain/repository"
)

// OrderUseCase encapsulates storefront order operations.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// PlaceGuestOrder records a checkout made without an account. The order
// keeps only the contact email until reconciliation links it to a user.
// The email is stored in the same canonical form registration uses, so the
// reconcile predicate matches regardless of how the shopper typed it.
func (u *OrderUseCase) PlaceGuestOrder(ctx context.Context, email string, items []model.ItemLine) (*model.Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !ValidateEmail(email) {
		return nil, domainErrors.ErrInvalidEmail
	}
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	var total float64
	for _, item := range items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, domainErrors.ErrInvalidAmount
		}
		total += float64(item.Quantity) * item.Price
	}

	order := &model.Order{
		Email:  email,
		Number: NewOrderNumber(),
		Total:  total,
		Items:  items,
	}
	return u.orders.Create(ctx, order)
}

// ListByUser returns orders linked to the user, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// GetByNumber looks an order up by its public reference, so a guest can
// check a purchase without an account.
func (u *OrderUseCase) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.GetByNumber(ctx, number)
}
