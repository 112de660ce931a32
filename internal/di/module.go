package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/designstudio/internal/app"
	"github.com/polkiloo/designstudio/internal/config"
	"github.com/polkiloo/designstudio/internal/logger"
	"github.com/polkiloo/designstudio/internal/metrics"
	"github.com/polkiloo/designstudio/internal/pkg/auth"
	"github.com/polkiloo/designstudio/internal/server/http/handlers"
	"github.com/polkiloo/designstudio/internal/server/http/middleware"
	"github.com/polkiloo/designstudio/internal/server/http/router"
	"github.com/polkiloo/designstudio/internal/storage/postgres"
	"github.com/polkiloo/designstudio/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.PortalFacade) handlers.PortalFacade { return f },
			func(f *app.PortalFacade) middleware.SubjectResolver { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
