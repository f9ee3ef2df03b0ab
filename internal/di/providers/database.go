package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/katalogapp/katalog-server/internal/collapse"
	"github.com/katalogapp/katalog-server/internal/config"
	"github.com/katalogapp/katalog-server/internal/logger"
	"github.com/katalogapp/katalog-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Store.DataPath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideCollapseManager provides the persisted group collapse state.
func ProvideCollapseManager(i do.Injector) (*collapse.Manager, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return collapse.NewManager(storeHandle.CollapseOverrides(), log.Logger), nil
}
