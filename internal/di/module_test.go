package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/atelierhq/atelier/internal/adapter/esign"
	"github.com/atelierhq/atelier/internal/app"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/domain/repository"
	"github.com/atelierhq/atelier/internal/storage/postgres"
	"github.com/atelierhq/atelier/internal/test"
	"go.uber.org/fx"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		EsignProviderAddress: "http://localhost",
		AuthSecret:           "secret",
		AuthStrategy:         "hmac",
		TokenTTL:             time.Minute,
		SweepInterval:        time.Millisecond,
		ContractPollInterval: time.Millisecond,
		WorkerPoolSize:       1,
		PollBatchSize:        1,
		ShutdownTimeout:      time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	memberRepo := &test.MemberRepositoryStub{}
	rewardRepo := &test.RewardRepositoryStub{}
	orderRepo := &test.OrderRepositoryStub{}
	contractRepo := &test.ContractRepositoryStub{}
	envelopeStub := &test.EnvelopeClientStub{}

	var facade *app.StorefrontFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.MemberRepository(memberRepo)),
			fx.Replace(repository.RewardRepository(rewardRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.ContractRepository(contractRepo)),
			fx.Replace(esign.Client(envelopeStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected storefront facade instance")
	}
}
