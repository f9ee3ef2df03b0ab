package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalogapp/katalog-server/internal/curate"
	"github.com/katalogapp/katalog-server/internal/domain"
)

func rec(id string, raw domain.RawRecord) *domain.Record {
	raw.ID = id
	return curate.Enrich(raw)
}

func dataset(recs ...*domain.Record) *domain.Dataset {
	return &domain.Dataset{Records: recs}
}

func titles(recs []*domain.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestProject_SearchFiltersAllTextFields(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Momo", Author: "Michael Ende"}),
		rec("2", domain.RawRecord{Title: "Das Parfum", Author: "Patrick Süskind"}),
		rec("3", domain.RawRecord{Title: "Faust", Description: "Goethes Momo-Ausgabe? Nein."}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{Search: "momo"})
	assert.ElementsMatch(t, []string{"Momo", "Faust"}, titles(got))

	got = e.Project(ds, domain.ViewState{Search: "SÜSKIND"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = e.Project(ds, domain.ViewState{Search: "nichts dergleichen"})
	assert.Empty(t, got)
}

func TestProject_PresenceFilters(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "A", CoverLocal: "covers/a.jpg"}),
		rec("2", domain.RawRecord{Title: "B", Description: "Mit Text."}),
		rec("3", domain.RawRecord{Title: "C", CoverOnline: "https://x/c.jpg", Description: "Beides."}),
		rec("4", domain.RawRecord{Title: "D"}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{OnlyWithCover: true, SortKey: domain.SortTitle})
	assert.Equal(t, []string{"A", "C"}, titles(got))

	got = e.Project(ds, domain.ViewState{OnlyWithDescription: true, SortKey: domain.SortTitle})
	assert.Equal(t, []string{"B", "C"}, titles(got))

	got = e.Project(ds, domain.ViewState{OnlyWithCover: true, OnlyWithDescription: true})
	assert.Equal(t, []string{"C"}, titles(got))
}

func TestProject_AuthorSortUsesFamilyName(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Zuletzt", Author: "Anna Zimmermann"}),
		rec("2", domain.RawRecord{Title: "Mitte", Author: "Meyer, Hans"}),
		rec("3", domain.RawRecord{Title: "Zuerst", Author: "Heinrich Böll"}),
		rec("4", domain.RawRecord{Title: "Ohne Autor"}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{SortKey: domain.SortAuthor})
	// Empty key collates before everything, then Böll < Meyer < Zimmermann.
	assert.Equal(t, []string{"Ohne Autor", "Zuerst", "Mitte", "Zuletzt"}, titles(got))
}

func TestProject_EmptyFieldSortsFirst(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Mit Jahr", Year: "1990"}),
		rec("2", domain.RawRecord{Title: "Ohne Jahr"}),
		rec("3", domain.RawRecord{Title: "Später", Year: "2005"}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{SortKey: domain.SortYear})
	assert.Equal(t, []string{"Ohne Jahr", "Mit Jahr", "Später"}, titles(got))
}

func TestProject_SearchIgnoresReorderedAuthorForm(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Momo", Author: "Michael Ende"}),
	)
	e := NewEngine()

	// The display form "Ende, Michael" is derived, not acquired; only
	// the raw fields are searchable.
	assert.Empty(t, e.Project(ds, domain.ViewState{Search: "ende, m"}))

	got := e.Project(ds, domain.ViewState{Search: "michael ende"})
	require.Len(t, got, 1)
}

func TestProject_AuthorSortKeepsAcquisitionOrderOnEqualKeys(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Zweiter Band", Author: "Meyer, Hans"}),
		rec("2", domain.RawRecord{Title: "Erster Band", Author: "Meyer, Hans"}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{SortKey: domain.SortAuthor})
	assert.Equal(t, []string{"Zweiter Band", "Erster Band"}, titles(got))
}

func TestProject_NumericCollation(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Chronik Vol. 10"}),
		rec("2", domain.RawRecord{Title: "Chronik Vol. 9"}),
		rec("3", domain.RawRecord{Title: "Chronik Vol. 2"}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{SortKey: domain.SortTitle})
	assert.Equal(t, []string{"Chronik Vol. 2", "Chronik Vol. 9", "Chronik Vol. 10"}, titles(got))
}

func TestProject_DiacriticInsensitiveCollation(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Müller"}),
		rec("2", domain.RawRecord{Title: "Mullers Ende"}),
		rec("3", domain.RawRecord{Title: "Munter"}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{SortKey: domain.SortTitle})
	// "Müller" collates with the u's, not after all of them.
	assert.Equal(t, []string{"Müller", "Mullers Ende", "Munter"}, titles(got))
}

func TestProject_QualitySortDescendingWithTitleTiebreak(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Beta"}),
		rec("2", domain.RawRecord{Title: "Alpha"}),
		rec("3", domain.RawRecord{Title: "Reich", Description: "x", ISBN: "1", Publisher: "p", Year: "2000"}),
	)
	e := NewEngine()

	got := e.Project(ds, domain.ViewState{SortKey: domain.SortQuality})
	assert.Equal(t, []string{"Reich", "Alpha", "Beta"}, titles(got))
}

func TestProject_IsStableAndRepeatable(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Gleich", Year: "1990"}),
		rec("2", domain.RawRecord{Title: "Gleich", Year: "1980"}),
		rec("3", domain.RawRecord{Title: "Anders", Year: "2000"}),
	)
	e := NewEngine()
	view := domain.ViewState{SortKey: domain.SortTitle}

	first := e.Project(ds, view)
	second := e.Project(ds, view)
	require.Equal(t, titles(first), titles(second))
	// Equal titles keep acquisition order.
	assert.Equal(t, "1", first[1].ID)
	assert.Equal(t, "2", first[2].ID)
}

func TestProject_DoesNotMutateDataset(t *testing.T) {
	ds := dataset(
		rec("1", domain.RawRecord{Title: "Zebra"}),
		rec("2", domain.RawRecord{Title: "Apfel"}),
	)
	e := NewEngine()
	_ = e.Project(ds, domain.ViewState{SortKey: domain.SortTitle})

	assert.Equal(t, "Zebra", ds.Records[0].Title)
	assert.Equal(t, "Apfel", ds.Records[1].Title)
}

func TestGroupBy_NoneReturnsSingleGroup(t *testing.T) {
	e := NewEngine()
	recs := []*domain.Record{
		rec("1", domain.RawRecord{Title: "A"}),
		rec("2", domain.RawRecord{Title: "B"}),
	}

	groups := e.GroupBy(recs, domain.GroupNone, func(string, int) bool { return true })
	require.Len(t, groups, 1)
	assert.False(t, groups[0].Collapsed)
	assert.Len(t, groups[0].Records, 2)
}

func TestGroupBy_CategoryAndPlaceholderOrdering(t *testing.T) {
	e := NewEngine()
	recs := e.Project(dataset(
		rec("1", domain.RawRecord{Title: "Momo", Subject: "Kinderbuch"}),
		rec("2", domain.RawRecord{Title: "Steuern heute", Subject: "Steuerrecht"}),
		rec("3", domain.RawRecord{Title: "Unklar"}),
	), domain.ViewState{SortKey: domain.SortTitle})

	groups := e.GroupBy(recs, domain.GroupCategory, nil)
	values := make([]string, len(groups))
	for i, g := range groups {
		values[i] = g.Value
	}
	assert.Equal(t, []string{curate.CategoryChildren, curate.CategoryOther, curate.CategoryBusiness}, values)
}

func TestGroupBy_RawDimensionFoldsBlanksLast(t *testing.T) {
	e := NewEngine()
	recs := []*domain.Record{
		rec("1", domain.RawRecord{Title: "A", Shelf: "R2"}),
		rec("2", domain.RawRecord{Title: "B"}),
		rec("3", domain.RawRecord{Title: "C", Shelf: "R10"}),
		rec("4", domain.RawRecord{Title: "D", Shelf: "R2"}),
	}

	groups := e.GroupBy(recs, "shelf", func(value string, size int) bool { return size >= 2 })
	require.Len(t, groups, 3)
	assert.Equal(t, "R2", groups[0].Value)
	assert.True(t, groups[0].Collapsed)
	assert.Equal(t, "R10", groups[1].Value)
	assert.False(t, groups[1].Collapsed)
	assert.Equal(t, domain.EmptyGroupValue, groups[2].Value)
	assert.Len(t, groups[0].Records, 2)
}
