package di

import (
	"github.com/atelierhq/atelier/internal/adapter/esign"
	"github.com/atelierhq/atelier/internal/app"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/logger"
	"github.com/atelierhq/atelier/internal/pkg/auth"
	"github.com/atelierhq/atelier/internal/server/http/handlers"
	"github.com/atelierhq/atelier/internal/server/http/router"
	"github.com/atelierhq/atelier/internal/storage/postgres"
	"github.com/atelierhq/atelier/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		esign.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
