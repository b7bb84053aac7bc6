package esign

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/atelierhq/atelier/internal/config"
)

// Module exposes the e-signature client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.EsignProviderAddress, p.Logger)
}
