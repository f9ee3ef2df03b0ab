package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// collapseOverridesKey is the single fixed entry holding the collapse
// override set, serialized as a JSON array of composite keys.
const collapseOverridesKey = "collapse:overrides"

// CollapseOverrides exposes the persisted collapse-override set. The
// returned value satisfies the collapse manager's store interface.
func (s *Store) CollapseOverrides() *CollapseOverrideStore {
	return &CollapseOverrideStore{s: s}
}

// CollapseOverrideStore reads and writes the override-key list under
// its fixed storage key.
type CollapseOverrideStore struct {
	s *Store
}

// Load returns the persisted override keys. A missing entry is an
// empty set, not an error; corrupt data is reported so the caller can
// fall back.
func (o *CollapseOverrideStore) Load() ([]string, error) {
	var keys []string
	err := o.s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(collapseOverridesKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &keys)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load collapse overrides: %w", err)
	}
	return keys, nil
}

// Save overwrites the persisted override keys.
func (o *CollapseOverrideStore) Save(keys []string) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("marshal collapse overrides: %w", err)
	}
	return o.s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collapseOverridesKey), data)
	})
}
