// Package query projects the canonical dataset into the view the user
// asked for: filter, then sort, then group. Projections are pure; the
// dataset is never mutated.
package query

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer wraps a German collator configured for catalog ordering:
// case- and diacritic-insensitive, with numeric runs compared by value
// so "Vol. 9" sorts before "Vol. 10".
//
// collate.Collator keeps internal buffers, so Comparer serializes
// access and is safe for concurrent use.
type Comparer struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewComparer returns a Comparer for catalog sort order.
func NewComparer() *Comparer {
	return &Comparer{
		c: collate.New(language.German, collate.Loose, collate.Numeric),
	}
}

// Compare returns -1, 0 or 1 per the catalog collation. Empty strings
// carry no special treatment; they collate before any non-empty value,
// so records with a missing sort field surface first.
func (cp *Comparer) Compare(a, b string) int {
	if a == b {
		return 0
	}
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.c.CompareString(a, b)
}

// Less reports whether a orders before b.
func (cp *Comparer) Less(a, b string) bool {
	return cp.Compare(a, b) < 0
}
