package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalogapp/katalog-server/internal/curate"
	"github.com/katalogapp/katalog-server/internal/domain"
)

func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func testRecords() *domain.Dataset {
	rows := []domain.RawRecord{
		{ID: "1", Title: "Momo", Author: "Michael Ende", Subject: "Kinderbuch", Year: "1973", Publisher: "Thienemann"},
		{ID: "2", Title: "Die unendliche Geschichte", Author: "Michael Ende", Subject: "Kinderbuch", Year: "1979"},
		{ID: "3", Title: "Das Parfum", Author: "Patrick Süskind", Subject: "Roman", Description: "Die Geschichte eines Mörders"},
	}
	return curate.BuildDataset(rows, 0)
}

func TestNewIndex_Empty(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestRebuild_IndexesAllRecords(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(testRecords()))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestRebuild_ReplacesPreviousContents(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(testRecords()))

	smaller := curate.BuildDataset([]domain.RawRecord{
		{ID: "9", Title: "Einzelstück", Author: "Jemand Anderes"},
	}, 0)
	require.NoError(t, index.Rebuild(smaller))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearch_TitleMatch(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(testRecords()))

	result, err := index.Search(context.Background(), Params{Query: "Momo", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "1", result.Hits[0].ID)
	assert.Equal(t, "Momo", result.Hits[0].Title)
}

func TestSearch_AuthorMatch(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(testRecords()))

	result, err := index.Search(context.Background(), Params{Query: "Ende", Limit: 10})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(result.Hits), 2)
}

func TestSearch_CategoryFilter(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(testRecords()))

	result, err := index.Search(context.Background(), Params{
		Category: curate.CategoryChildren,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
	for _, hit := range result.Hits {
		assert.Equal(t, curate.CategoryChildren, hit.Category)
	}
}

func TestSearch_CategoryFacets(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(testRecords()))

	result, err := index.Search(context.Background(), Params{
		Query:         "Geschichte",
		Limit:         10,
		IncludeFacets: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.NotEmpty(t, result.Facets)
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(testRecords()))

	result, err := index.Search(context.Background(), Params{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), result.Total)
}
