package search

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// Index wraps a Bleve index over the curated dataset.
//
// The catalog is reloaded wholesale, never patched, so the index lives
// in memory and is rebuilt from scratch on every (re)load. The mutex
// protects readers from the swap during a rebuild.
type Index struct {
	mu     sync.RWMutex
	index  bleve.Index
	logger *slog.Logger
}

// New creates an empty in-memory index.
func New(logger *slog.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{index: idx, logger: logger}, nil
}

// Rebuild replaces the index contents with the given dataset. Batches
// keep memory pressure bounded for large catalogs.
func (s *Index) Rebuild(ds *domain.Dataset) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	const batchSize = 500
	records := ds.Records
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}

		batch := fresh.NewBatch()
		for _, rec := range records[i:end] {
			doc := FromRecord(rec)
			// Map form keeps field names aligned with the mapping.
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := fresh.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	if s.logger != nil {
		s.logger.Info("rebuilt search index", "documents", len(records))
	}
	return nil
}

// DocumentCount returns the total number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}
