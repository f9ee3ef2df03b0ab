// Package catalog owns the canonical in-memory dataset and assembles
// the filtered, sorted, grouped views served to clients.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/katalogapp/katalog-server/internal/collapse"
	"github.com/katalogapp/katalog-server/internal/curate"
	"github.com/katalogapp/katalog-server/internal/deeplink"
	"github.com/katalogapp/katalog-server/internal/domain"
	"github.com/katalogapp/katalog-server/internal/errors"
	"github.com/katalogapp/katalog-server/internal/ingest"
	"github.com/katalogapp/katalog-server/internal/query"
	"github.com/katalogapp/katalog-server/internal/search"
	"github.com/katalogapp/katalog-server/internal/sse"
)

// Emitter receives dataset lifecycle events for connected clients.
type Emitter interface {
	Emit(event sse.Event)
}

// Service holds the canonical dataset and recomputes full projections
// on every request. The dataset pointer is swapped atomically on
// (re)load; everything downstream of it is a pure function.
type Service struct {
	log      *slog.Logger
	source   ingest.Source
	engine   *query.Engine
	collapse *collapse.Manager
	index    *search.Index
	links    *deeplink.Controller
	events   Emitter
	banner   *BannerSampler

	ds atomic.Pointer[domain.Dataset]
}

// New builds the service around an acquisition source. The search
// index may be nil when full-text search is disabled.
func New(source ingest.Source, cm *collapse.Manager, idx *search.Index, log *slog.Logger) *Service {
	s := &Service{
		log:      log,
		source:   source,
		engine:   query.NewEngine(),
		collapse: cm,
		index:    idx,
		links:    deeplink.NewController(nil, log),
		banner:   NewBannerSampler(nil),
	}
	s.ds.Store(&domain.Dataset{})
	return s
}

// Load acquires, validates and enriches the dataset, then swaps it in.
// An acquisition failure is terminal for the session: the canonical
// dataset stays empty, the failure is logged once, and the error is
// returned for the caller's placeholder handling.
func (s *Service) Load(ctx context.Context) error {
	rows, parseErrors, err := s.source.Fetch(ctx)
	if err != nil {
		s.log.Error("catalog acquisition failed, dataset stays empty", "error", err)
		return err
	}

	ds := curate.BuildDataset(rows, parseErrors)
	s.ds.Store(ds)
	s.log.Info("catalog loaded",
		"records", ds.Len(),
		"rejected", ds.Rejected,
		"parse_errors", ds.ParseErrors,
	)

	if s.index != nil {
		if err := s.index.Rebuild(ds); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "rebuild search index")
		}
	}

	if s.events != nil {
		s.events.Emit(sse.NewCatalogReloadedEvent(ds.Len(), ds.Rejected, ds.ParseErrors))
	}
	return nil
}

// SetEvents wires an event emitter notified after every dataset swap.
func (s *Service) SetEvents(em Emitter) {
	s.events = em
}

// SetBannerSampler replaces the banner sampler, used by tests to pin
// the random source.
func (s *Service) SetBannerSampler(b *BannerSampler) {
	s.banner = b
}

// Banner returns up to n randomly selected cover-bearing records.
func (s *Service) Banner(n int) []*domain.Record {
	return s.banner.Sample(s.Dataset(), n)
}

// Reload is Load for an already-running server.
func (s *Service) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Dataset returns the current canonical dataset. Never nil.
func (s *Service) Dataset() *domain.Dataset {
	return s.ds.Load()
}

// Links exposes the deep-link controller for selection endpoints.
func (s *Service) Links() *deeplink.Controller {
	return s.links
}

// View recomputes the full projection for the given view state:
// filter, sort, group, collapse decisions.
func (s *Service) View(view domain.ViewState) []domain.Group {
	view.Normalize()
	ds := s.Dataset()
	recs := s.engine.Project(ds, view)
	groups := s.engine.GroupBy(recs, view.GroupDimension, nil)
	s.collapse.Apply(view.GroupDimension, groups)
	return groups
}

// Detail returns one record by identifier.
func (s *Service) Detail(id string) (*domain.Record, error) {
	rec := s.Dataset().Lookup(id)
	if rec == nil {
		return nil, errors.NotFoundf("book %s not found", id)
	}
	return rec, nil
}

// ToggleGroup flips the collapse override for a group and returns the
// persisted state.
func (s *Service) ToggleGroup(dimension, value string) bool {
	return s.collapse.Toggle(dimension, value)
}

// Search runs a full-text query against the index.
func (s *Service) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if s.index == nil {
		return nil, errors.Unavailable("search index disabled")
	}
	return s.index.Search(ctx, params)
}

// Stats summarizes the current dataset.
type Stats struct {
	Total           int            `json:"total"`
	Rejected        int            `json:"rejected"`
	ParseErrors     int            `json:"parse_errors"`
	WithCover       int            `json:"with_cover"`
	WithDescription int            `json:"with_description"`
	ByCategory      map[string]int `json:"by_category"`
	AverageQuality  float64        `json:"average_quality"`
}

// Stats computes dataset statistics on demand.
func (s *Service) Stats() Stats {
	ds := s.Dataset()
	st := Stats{
		Total:       ds.Len(),
		Rejected:    ds.Rejected,
		ParseErrors: ds.ParseErrors,
		ByCategory:  make(map[string]int),
	}
	var qualitySum float64
	for _, rec := range ds.Records {
		if rec.HasCover() {
			st.WithCover++
		}
		if strings.TrimSpace(rec.Description) != "" {
			st.WithDescription++
		}
		st.ByCategory[rec.Category]++
		qualitySum += curate.QualityScore(rec)
	}
	if st.Total > 0 {
		st.AverageQuality = qualitySum / float64(st.Total)
	}
	return st
}

// String implements fmt.Stringer for log lines.
func (st Stats) String() string {
	return fmt.Sprintf("%d records (%d rejected, %d parse errors)", st.Total, st.Rejected, st.ParseErrors)
}
