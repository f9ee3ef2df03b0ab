package store

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCollapseOverrides_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	o := s.CollapseOverrides()

	keys := []string{"category::Belletristik", "shelf::R2"}
	require.NoError(t, o.Save(keys))

	got, err := o.Load()
	require.NoError(t, err)
	assert.Equal(t, keys, got)
}

func TestCollapseOverrides_MissingEntryIsEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.CollapseOverrides().Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollapseOverrides_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	o := s.CollapseOverrides()

	require.NoError(t, o.Save([]string{"category::Medizin"}))
	require.NoError(t, o.Save([]string{}))

	got, err := o.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollapseOverrides_CorruptDataErrors(t *testing.T) {
	s := newTestStore(t)

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collapseOverridesKey), []byte("not json"))
	})
	require.NoError(t, err)

	_, err = s.CollapseOverrides().Load()
	assert.Error(t, err)
}
