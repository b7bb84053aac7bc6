package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.MemberRepository { return s.Members() },
		func(s *Storage) repository.RewardRepository { return s.Rewards() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.ContractRepository { return s.Contracts() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
