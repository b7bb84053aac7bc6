package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/test"
)

func TestTierForSpend(t *testing.T) {
	tests := []struct {
		spend float64
		want  model.Tier
	}{
		{0, model.TierMember},
		{499.99, model.TierMember},
		{500, model.TierPlus},
		{1499.99, model.TierPlus},
		{1500, model.TierPremier},
		{10000, model.TierPremier},
	}
	for _, tt := range tests {
		if got := TierForSpend(tt.spend); got != tt.want {
			t.Errorf("TierForSpend(%v) = %v, want %v", tt.spend, got, tt.want)
		}
	}
}

func TestMembershipEnroll(t *testing.T) {
	tests := []struct {
		name       string
		birthMonth int
		birthDay   int
		wantErr    error
	}{
		{name: "with birthday", birthMonth: 6, birthDay: 15},
		{name: "without birthday"},
		{name: "month out of range", birthMonth: 13, birthDay: 1, wantErr: domainErrors.ErrInvalidAmount},
		{name: "day out of range", birthMonth: 6, birthDay: 32, wantErr: domainErrors.ErrInvalidAmount},
		{name: "negative month", birthMonth: -1, wantErr: domainErrors.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := &test.MemberRepositoryStub{}
			uc := NewMembershipUseCase(members)

			member, err := uc.Enroll(context.Background(), 7, tt.birthMonth, tt.birthDay)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if member.UserID != 7 || member.Tier != model.TierMember {
				t.Fatalf("unexpected member: %+v", member)
			}
		})
	}
}

func TestMembershipAccrueSpend(t *testing.T) {
	tests := []struct {
		name       string
		member     *model.Member
		amount     float64
		wantErr    error
		wantPoints int64
		wantTier   model.Tier
	}{
		{
			name:       "points floor of amount",
			member:     &model.Member{ID: 1, UserID: 7, Tier: model.TierMember},
			amount:     120.75,
			wantPoints: 120,
			wantTier:   model.TierMember,
		},
		{
			name:       "crosses plus threshold",
			member:     &model.Member{ID: 1, UserID: 7, Tier: model.TierMember, LifetimeSpend: 450},
			amount:     100,
			wantPoints: 100,
			wantTier:   model.TierPlus,
		},
		{
			name:       "crosses premier threshold",
			member:     &model.Member{ID: 1, UserID: 7, Tier: model.TierPlus, LifetimeSpend: 1450},
			amount:     60,
			wantPoints: 60,
			wantTier:   model.TierPremier,
		},
		{
			name:       "tier never downgrades",
			member:     &model.Member{ID: 1, UserID: 7, Tier: model.TierPremier, LifetimeSpend: 10},
			amount:     5,
			wantPoints: 5,
			wantTier:   model.TierPremier,
		},
		{
			name:    "zero amount rejected",
			member:  &model.Member{ID: 1, UserID: 7, Tier: model.TierMember},
			amount:  0,
			wantErr: domainErrors.ErrInvalidAmount,
		},
		{
			name:    "negative amount rejected",
			member:  &model.Member{ID: 1, UserID: 7, Tier: model.TierMember},
			amount:  -10,
			wantErr: domainErrors.ErrInvalidAmount,
		},
		{
			name:    "unknown member",
			amount:  10,
			wantErr: domainErrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := &test.MemberRepositoryStub{Member: tt.member}
			uc := NewMembershipUseCase(members)

			_, err := uc.AccrueSpend(context.Background(), 7, tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(members.AccrueCalls) != 1 {
				t.Fatalf("expected one accrue call, got %d", len(members.AccrueCalls))
			}
			call := members.AccrueCalls[0]
			if call.Points != tt.wantPoints {
				t.Errorf("points = %d, want %d", call.Points, tt.wantPoints)
			}
			if call.Tier != tt.wantTier {
				t.Errorf("tier = %v, want %v", call.Tier, tt.wantTier)
			}
			if call.Spend != tt.amount {
				t.Errorf("spend = %v, want %v", call.Spend, tt.amount)
			}
		})
	}
}
