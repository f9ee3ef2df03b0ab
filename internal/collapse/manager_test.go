package collapse

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalogapp/katalog-server/internal/domain"
)

type fakeStore struct {
	keys    []string
	loadErr error
	saves   int
}

func (s *fakeStore) Load() ([]string, error) {
	return s.keys, s.loadErr
}

func (s *fakeStore) Save(keys []string) error {
	s.keys = append([]string(nil), keys...)
	s.saves++
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func groupOf(value string, size int) domain.Group {
	recs := make([]*domain.Record, size)
	for i := range recs {
		recs[i] = &domain.Record{}
	}
	return domain.Group{Value: value, Records: recs}
}

func TestApply_DimensionChangeSeedsDefaults(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store, discard())

	// Five records sharing one category start collapsed on a fresh
	// dimension with no prior override.
	groups := []domain.Group{groupOf("Belletristik", 5), groupOf("Medizin", 2)}
	m.Apply(domain.GroupCategory, groups)

	assert.True(t, groups[0].Collapsed)
	assert.False(t, groups[1].Collapsed)
	assert.Equal(t, []string{"category::Belletristik"}, store.keys)
}

func TestApply_DimensionChangeDropsStaleOverrides(t *testing.T) {
	store := &fakeStore{keys: []string{"shelf::R2"}}
	m := NewManager(store, discard())

	// R2 shrank below the threshold; the stale collapse override goes.
	groups := []domain.Group{groupOf("R2", 2)}
	m.Apply("shelf", groups)

	assert.False(t, groups[0].Collapsed)
	assert.Empty(t, store.keys)
}

func TestApply_DimensionChangeIgnoresOverrideForDecision(t *testing.T) {
	store := &fakeStore{keys: []string{"category::Belletristik"}}
	m := NewManager(store, discard())
	m.Apply("shelf", []domain.Group{groupOf("R1", 1)})

	// Switching back to category: the large group is collapsed by
	// default even though its override already existed.
	groups := []domain.Group{groupOf("Belletristik", 6)}
	m.Apply(domain.GroupCategory, groups)
	assert.True(t, groups[0].Collapsed)
}

func TestApply_SameDimensionConsultsOverrides(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store, discard())

	groups := []domain.Group{groupOf("R2", 2)}
	m.Apply("shelf", groups)
	require.False(t, groups[0].Collapsed)

	// User collapses the small group; a re-render within the same
	// dimension honors the override.
	m.Toggle("shelf", "R2")
	groups = []domain.Group{groupOf("R2", 2)}
	m.Apply("shelf", groups)
	assert.True(t, groups[0].Collapsed)
}

func TestApply_NoneDimensionNeverCollapses(t *testing.T) {
	store := &fakeStore{keys: []string{"none::"}}
	m := NewManager(store, discard())

	groups := []domain.Group{groupOf("", 10)}
	m.Apply(domain.GroupNone, groups)
	assert.False(t, groups[0].Collapsed)
}

func TestToggle_FlipsAndPersistsImmediately(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store, discard())

	assert.True(t, m.Toggle(domain.GroupCategory, "Medizin"))
	assert.Equal(t, []string{"category::Medizin"}, store.keys)
	assert.Equal(t, 1, store.saves)

	assert.False(t, m.Toggle(domain.GroupCategory, "Medizin"))
	assert.Empty(t, store.keys)
	assert.Equal(t, 2, store.saves)
}

func TestNewManager_LoadFailureStartsEmpty(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("corrupt")}
	m := NewManager(store, discard())

	assert.Empty(t, m.Overrides())

	// Still fully functional afterwards.
	assert.True(t, m.Toggle("shelf", "R1"))
	assert.Equal(t, []string{"shelf::R1"}, m.Overrides())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "category::Kinder & Jugend", Key("category", "Kinder & Jugend"))
}
