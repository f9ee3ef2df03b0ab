package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/katalogapp/katalog-server/internal/catalog"
	"github.com/katalogapp/katalog-server/internal/collapse"
	"github.com/katalogapp/katalog-server/internal/config"
	"github.com/katalogapp/katalog-server/internal/ingest"
	"github.com/katalogapp/katalog-server/internal/logger"
)

// ProvideSource provides the raw record source selected by configuration.
func ProvideSource(i do.Injector) (ingest.Source, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Catalog.Source {
	case config.SourceFile:
		return &ingest.FileSource{Path: cfg.Catalog.Path, Logger: log.Logger}, nil
	case config.SourceURL:
		return &ingest.HTTPSource{URL: cfg.Catalog.URL, Logger: log.Logger}, nil
	case config.SourceSQLite:
		return &ingest.SQLiteSource{Path: cfg.Catalog.Path, Logger: log.Logger}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// ProvideCatalogService provides the catalog service with its initial dataset loaded.
func ProvideCatalogService(i do.Injector) (*catalog.Service, error) {
	source := do.MustInvoke[ingest.Source](i)
	cm := do.MustInvoke[*collapse.Manager](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := catalog.New(source, cm, indexHandle.Index, log.Logger)
	svc.SetEvents(do.MustInvoke[*SSEManagerHandle](i).Manager)

	// A failed initial load is terminal for the dataset but not for the
	// server; it keeps serving the empty catalog.
	if err := svc.Load(context.Background()); err != nil {
		log.Warn("Initial catalog load failed", "error", err)
	}

	return svc, nil
}

// WatcherHandle owns the source file watcher goroutine.
type WatcherHandle struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideWatcher starts the source file watcher when configured.
func ProvideWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	svc := do.MustInvoke[*catalog.Service](i)

	if !cfg.Catalog.Watch || cfg.Catalog.Source == config.SourceURL {
		return &WatcherHandle{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := svc.Watch(ctx, cfg.Catalog.Path); err != nil && ctx.Err() == nil {
			log.Error("Source watcher stopped", "error", err)
		}
	}()

	log.Info("Watching catalog source", "path", cfg.Catalog.Path)

	return &WatcherHandle{cancel: cancel}, nil
}
