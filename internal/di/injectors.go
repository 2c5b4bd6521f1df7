//go:build wireinject
// +build wireinject

package di

import (
	"dropxhub/internal"
	"dropxhub/internal/controllers"
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"dropxhub/internal/storage"
	"dropxhub/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,

		storage.NewCompressor,
		storage.NewFileStorage,

		services.NewCatalogService,
		services.NewPreferenceService,
		services.NewLogAlerter,
		services.NewNotificationService,
		services.NewAdminService,

		controllers.NewCatalogController,
		controllers.NewPreferenceController,
		controllers.NewNotificationController,
		controllers.NewAdminController,
		controllers.NewHealthController,

		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
