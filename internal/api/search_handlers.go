package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/katalogapp/katalog-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Full-text search",
		Description: "Searches the catalog index with fuzzy and prefix matching",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput contains search parameters.
type SearchInput struct {
	Query     string `query:"q" doc:"Search query; empty matches everything"`
	Category  string `query:"category" doc:"Exact category filter"`
	Limit     int    `query:"limit" minimum:"0" maximum:"100" doc:"Maximum hits to return"`
	Offset    int    `query:"offset" minimum:"0" doc:"Hits to skip for pagination"`
	Facets    bool   `query:"facets" doc:"Include category facet counts"`
	Highlight bool   `query:"highlight" doc:"Include match highlighting"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Category = input.Category
	params.IncludeFacets = input.Facets
	params.Highlight = input.Highlight
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}

	result, err := s.catalog.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}
