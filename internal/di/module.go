package di

import (
	"go.uber.org/fx"

	"github.com/restoflow/restoflow/internal/app"
	"github.com/restoflow/restoflow/internal/config"
	"github.com/restoflow/restoflow/internal/logger"
	"github.com/restoflow/restoflow/internal/notify"
	"github.com/restoflow/restoflow/internal/pkg/auth"
	"github.com/restoflow/restoflow/internal/server/http/handlers"
	"github.com/restoflow/restoflow/internal/server/http/router"
	"github.com/restoflow/restoflow/internal/storage/postgres"
	"github.com/restoflow/restoflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketFacade) handlers.MarketplaceFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
