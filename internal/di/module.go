package di

import (
	"go.uber.org/fx"

	"github.com/caffeinepub/food-order-delivery-platform/internal/adapter/events"
	"github.com/caffeinepub/food-order-delivery-platform/internal/app"
	"github.com/caffeinepub/food-order-delivery-platform/internal/config"
	"github.com/caffeinepub/food-order-delivery-platform/internal/logger"
	"github.com/caffeinepub/food-order-delivery-platform/internal/pkg/auth"
	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/handlers"
	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/router"
	"github.com/caffeinepub/food-order-delivery-platform/internal/storage/postgres"
	"github.com/caffeinepub/food-order-delivery-platform/internal/usecase"
)

// Module assembles the storefront backend graph. Extra options are appended
// last so callers can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		events.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
