package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/domain/repository"
)

// ReconcileUseCase attaches guest purchase history to an authenticated user.
type ReconcileUseCase struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(orders repository.OrderRepository, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{orders: orders, logger: logger}
}

// Reconcile links every guest order sharing the identity's email to the
// identity's user. Orders are linked independently: a failure on one row is
// logged and skipped, never retried, and does not abort the rest. The
// operation is idempotent because linked orders stop matching the guest
// predicate.
func (u *ReconcileUseCase) Reconcile(ctx context.Context, identity model.Identity) (model.ReconcileResult, error) {
	if identity.Email == "" {
		return model.ReconcileResult{}, domainErrors.ErrMissingEmail
	}

	candidates, err := u.orders.ListGuestByEmail(ctx, identity.Email)
	if err != nil {
		return model.ReconcileResult{}, err
	}

	result := model.ReconcileResult{Total: len(candidates)}
	for _, order := range candidates {
		linked, err := u.orders.LinkUser(ctx, order.ID, identity.UserID)
		if err != nil {
			u.logger.Error("link guest order failed",
				slog.String("order", order.Number),
				slog.Int64("user_id", identity.UserID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if linked {
			result.Linked++
		}
	}
	return result, nil
}
