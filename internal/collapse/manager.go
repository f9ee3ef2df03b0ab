// Package collapse tracks which groups of the current view are
// collapsed, persisting the user's explicit choices across sessions.
package collapse

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// DefaultThreshold is the group size at which a group starts collapsed
// unless the user has said otherwise.
const DefaultThreshold = 4

const keySeparator = "::"

// OverrideStore persists the override set as an ordered list of keys.
// Implementations must tolerate being read before any write.
type OverrideStore interface {
	Load() ([]string, error)
	Save(keys []string) error
}

// Key builds the composite override key for one group.
func Key(dimension, value string) string {
	return dimension + keySeparator + value
}

// Manager decides collapsed state for groups. Membership in the
// override set means "collapsed"; absent keys fall back to the
// size-based default. The set is loaded once at construction and
// rewritten on every toggle and every dimension-change reconciliation.
type Manager struct {
	mu        sync.Mutex
	store     OverrideStore
	log       *slog.Logger
	overrides map[string]struct{}
	lastDim   string
}

// NewManager loads the persisted override set. A load failure is
// non-fatal: the manager starts with an empty set and logs a warning.
func NewManager(store OverrideStore, log *slog.Logger) *Manager {
	m := &Manager{
		store:     store,
		log:       log,
		overrides: make(map[string]struct{}),
	}
	keys, err := store.Load()
	if err != nil {
		log.Warn("collapse overrides unreadable, starting empty", "error", err)
		return m
	}
	for _, k := range keys {
		m.overrides[k] = struct{}{}
	}
	return m
}

// Apply fills in the Collapsed flag for every group of a freshly
// computed grouping pass along the given dimension.
//
// When the dimension differs from the previous pass the override set
// is reconciled against the defaults: large groups without an override
// get one seeded, stale overrides on small groups are dropped, and the
// decision is the default itself. Within an unchanged dimension an
// override wins over the default. The flat "none" dimension is never
// collapsed but still counts as a dimension for change detection.
func (m *Manager) Apply(dimension string, groups []domain.Group) {
	m.mu.Lock()
	defer m.mu.Unlock()

	isChange := dimension != m.lastDim
	m.lastDim = dimension

	if dimension == domain.GroupNone {
		for i := range groups {
			groups[i].Collapsed = false
		}
		return
	}

	dirty := false
	for i := range groups {
		key := Key(dimension, groups[i].Value)
		def := len(groups[i].Records) >= DefaultThreshold
		if isChange {
			_, overridden := m.overrides[key]
			if def && !overridden {
				m.overrides[key] = struct{}{}
				dirty = true
			}
			if !def && overridden {
				delete(m.overrides, key)
				dirty = true
			}
			groups[i].Collapsed = def
			continue
		}
		if _, overridden := m.overrides[key]; overridden {
			groups[i].Collapsed = true
		} else {
			groups[i].Collapsed = def
		}
	}

	if dirty {
		m.persistLocked()
	}
}

// Toggle flips the override membership for one group key and persists
// immediately. It returns whether the key is overridden (collapsed)
// after the flip.
func (m *Manager) Toggle(dimension, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(dimension, value)
	_, overridden := m.overrides[key]
	if overridden {
		delete(m.overrides, key)
	} else {
		m.overrides[key] = struct{}{}
	}
	m.persistLocked()
	return !overridden
}

// Overrides returns the current override keys in sorted order.
func (m *Manager) Overrides() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedKeysLocked()
}

func (m *Manager) sortedKeysLocked() []string {
	keys := make([]string, 0, len(m.overrides))
	for k := range m.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Manager) persistLocked() {
	if err := m.store.Save(m.sortedKeysLocked()); err != nil {
		m.log.Warn("persisting collapse overrides failed", "error", err)
	}
}
