// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/katalogapp/katalog-server/internal/catalog"
	"github.com/katalogapp/katalog-server/internal/collapse"
	"github.com/katalogapp/katalog-server/internal/config"
	"github.com/katalogapp/katalog-server/internal/di/providers"
	"github.com/katalogapp/katalog-server/internal/ingest"
	"github.com/katalogapp/katalog-server/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Events
	do.Provide(injector, providers.ProvideSSEManager)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCollapseManager)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Catalog layer
	do.Provide(injector, providers.ProvideSource)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*collapse.Manager](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[ingest.Source](injector)
	_ = do.MustInvoke[*catalog.Service](injector)
	_ = do.MustInvoke[*providers.WatcherHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
