package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/test"
)

func TestPlaceGuestOrder(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		items     []model.ItemLine
		wantErr   error
		wantTotal float64
	}{
		{
			name:  "success",
			email: "ada@example.com",
			items: []model.ItemLine{
				{SKU: "TOTE-01", Name: "Canvas tote", Quantity: 2, Price: 40},
				{SKU: "SCARF-02", Name: "Silk scarf", Quantity: 1, Price: 85.5},
			},
			wantTotal: 165.5,
		},
		{
			name:    "invalid email",
			email:   "nope",
			items:   []model.ItemLine{{SKU: "TOTE-01", Quantity: 1, Price: 40}},
			wantErr: domainErrors.ErrInvalidEmail,
		},
		{
			name:    "empty items",
			email:   "ada@example.com",
			wantErr: domainErrors.ErrEmptyOrder,
		},
		{
			name:    "zero quantity",
			email:   "ada@example.com",
			items:   []model.ItemLine{{SKU: "TOTE-01", Quantity: 0, Price: 40}},
			wantErr: domainErrors.ErrInvalidAmount,
		},
		{
			name:    "negative price",
			email:   "ada@example.com",
			items:   []model.ItemLine{{SKU: "TOTE-01", Quantity: 1, Price: -1}},
			wantErr: domainErrors.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &test.OrderRepositoryStub{}
			uc := NewOrderUseCase(orders)

			order, err := uc.PlaceGuestOrder(context.Background(), tt.email, tt.items)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !order.IsGuest() {
				t.Fatal("guest order must not carry a user")
			}
			if order.Total != tt.wantTotal {
				t.Errorf("total = %v, want %v", order.Total, tt.wantTotal)
			}
			if !strings.HasPrefix(order.Number, "ATL-") {
				t.Errorf("unexpected order number %q", order.Number)
			}
		})
	}
}

func TestPlaceGuestOrderCanonicalizesEmail(t *testing.T) {
	orders := &test.OrderRepositoryStub{}
	uc := NewOrderUseCase(orders)

	order, err := uc.PlaceGuestOrder(context.Background(), "  Ada@Example.COM ",
		[]model.ItemLine{{SKU: "TOTE-01", Quantity: 1, Price: 40}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Email != "ada@example.com" {
		t.Fatalf("stored email %q, want canonical form", order.Email)
	}

	// The stored form must match the identity email a later login produces,
	// otherwise the guest order can never be reconciled.
	reconciler := NewReconcileUseCase(orders, discardLogger())
	orders.Guest = []model.Order{*order}
	result, err := reconciler.Reconcile(context.Background(), model.Identity{UserID: 7, Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Linked != 1 {
		t.Fatalf("result = %+v, want the mixed-case checkout linked", result)
	}
}

func TestOrderGetByNumber(t *testing.T) {
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, Email: "ada@example.com", Number: "ATL-1A2B3C4D5E6F"},
	}}
	uc := NewOrderUseCase(orders)

	// References are case-insensitive on lookup: stored uppercase, accepted as typed.
	order, err := uc.GetByNumber(context.Background(), " atl-1a2b3c4d5e6f ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 1 {
		t.Fatalf("unexpected order: %+v", order)
	}

	if _, err := uc.GetByNumber(context.Background(), ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for empty reference, got %v", err)
	}
	if _, err := uc.GetByNumber(context.Background(), "ATL-UNKNOWN"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown reference, got %v", err)
	}
}

func TestOrderListByUser(t *testing.T) {
	userID := int64(7)
	orders := &test.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, UserID: &userID, Number: "ATL-A"},
	}}
	uc := NewOrderUseCase(orders)

	list, err := uc.ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].Number != "ATL-A" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
