package query

import (
	"sort"
	"strings"

	"github.com/katalogapp/katalog-server/internal/curate"
	"github.com/katalogapp/katalog-server/internal/domain"
)

// Engine computes view projections over an immutable dataset.
type Engine struct {
	cmp *Comparer
}

// NewEngine returns a projection engine with catalog collation.
func NewEngine() *Engine {
	return &Engine{cmp: NewComparer()}
}

// Comparer exposes the engine's collator so grouping and API layers
// order values consistently with record sorting.
func (e *Engine) Comparer() *Comparer {
	return e.cmp
}

// Project applies the view controls to the dataset: text filter first,
// then the presence filters, then a stable sort by the selected key.
// The returned slice is freshly allocated; the dataset is untouched.
func (e *Engine) Project(ds *domain.Dataset, view domain.ViewState) []*domain.Record {
	view.Normalize()

	out := make([]*domain.Record, 0, ds.Len())
	needle := strings.ToLower(strings.TrimSpace(view.Search))
	for _, rec := range ds.Records {
		if needle != "" && !matchesSearch(rec, needle) {
			continue
		}
		if view.OnlyWithCover && !rec.HasCover() {
			continue
		}
		if view.OnlyWithDescription && strings.TrimSpace(rec.Description) == "" {
			continue
		}
		out = append(out, rec)
	}

	e.sortRecords(out, view.SortKey)
	return out
}

// matchesSearch reports whether the needle occurs in any searchable
// field. Matching is a plain case-insensitive substring test.
func matchesSearch(rec *domain.Record, needle string) bool {
	for _, hay := range []string{
		rec.Title,
		rec.Author,
		rec.Signature,
		rec.Publisher,
		rec.Description,
	} {
		if hay != "" && strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// sortRecords orders the projection in place. The sort is stable so
// records with equal keys keep their acquisition order, which makes
// repeated projections of the same view identical.
func (e *Engine) sortRecords(recs []*domain.Record, key string) {
	switch key {
	case domain.SortAuthor:
		// Stability covers equal sort keys; only quality gets a tiebreak.
		sort.SliceStable(recs, func(i, j int) bool {
			return e.cmp.Less(curate.AuthorSortKey(recs[i]), curate.AuthorSortKey(recs[j]))
		})
	case domain.SortQuality:
		// Highest quality first; equal scores fall back to title order.
		sort.SliceStable(recs, func(i, j int) bool {
			qi, qj := curate.QualityScore(recs[i]), curate.QualityScore(recs[j])
			if qi != qj {
				return qi > qj
			}
			return e.cmp.Less(recs[i].Title, recs[j].Title)
		})
	default:
		sort.SliceStable(recs, func(i, j int) bool {
			return e.cmp.Less(recs[i].Field(key), recs[j].Field(key))
		})
	}
}
