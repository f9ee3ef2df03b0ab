package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/katalogapp/katalog-server/internal/catalog"
	"github.com/katalogapp/katalog-server/internal/curate"
	"github.com/katalogapp/katalog-server/internal/domain"
	domainerrors "github.com/katalogapp/katalog-server/internal/errors"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Get catalog view",
		Description: "Returns the curated catalog projected through search, filters, sort and grouping",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "reloadCatalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/reload",
		Summary:     "Reload catalog",
		Description: "Re-reads the source and rebuilds the dataset and search index",
		Tags:        []string{"Catalog"},
	}, s.handleReloadCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBanner",
		Method:      http.MethodGet,
		Path:        "/api/v1/banner",
		Summary:     "Get banner covers",
		Description: "Returns a random selection of records with cover images for the banner strip",
		Tags:        []string{"Catalog"},
	}, s.handleGetBanner)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get catalog statistics",
		Description: "Returns curation and coverage statistics for the current dataset",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalogStats)
}

// === DTOs ===

// GetCatalogInput contains the view controls as query parameters.
type GetCatalogInput struct {
	Search          string `query:"search" doc:"Substring search across title, author, signature, publisher and description"`
	OnlyCover       bool   `query:"only_with_cover" doc:"Keep only records with a cover image"`
	OnlyDescription bool   `query:"only_with_description" doc:"Keep only records with a description"`
	Sort            string `query:"sort" doc:"Sort key (author, title, year, signature, shelf, subject, quality, publisher, language)"`
	Group           string `query:"group" doc:"Grouping dimension (none, category, signature, shelf, subject, publisher, year, language)"`
}

// BookResponse contains one curated record in API responses.
type BookResponse struct {
	ID            string  `json:"id" doc:"Book ID"`
	Author        string  `json:"author,omitempty" doc:"Author as acquired"`
	AuthorDisplay string  `json:"author_display,omitempty" doc:"Normalized Family, Given form"`
	Title         string  `json:"title" doc:"Title"`
	Signature     string  `json:"signature,omitempty" doc:"Shelf signature"`
	Shelf         string  `json:"shelf,omitempty" doc:"Physical shelf"`
	Subject       string  `json:"subject,omitempty" doc:"Subject column"`
	Category      string  `json:"category" doc:"Derived category label"`
	Year          string  `json:"year,omitempty" doc:"Publication year as acquired"`
	Language      string  `json:"language,omitempty" doc:"Language"`
	ISBN          string  `json:"isbn,omitempty" doc:"ISBN"`
	Publisher     string  `json:"publisher,omitempty" doc:"Publisher"`
	Description   string  `json:"description,omitempty" doc:"Description text"`
	HasCover      bool    `json:"has_cover" doc:"Whether any cover image is referenced"`
	Quality       float64 `json:"quality" doc:"Metadata completeness score"`
}

// GroupResponse is one partition of the projected catalog.
type GroupResponse struct {
	Value     string         `json:"value" doc:"Group value for the active dimension"`
	Collapsed bool           `json:"collapsed" doc:"Whether the group renders collapsed"`
	Count     int            `json:"count" doc:"Number of records in the group"`
	Books     []BookResponse `json:"books" doc:"Records in display order"`
}

// CatalogResponse contains the full projected view.
type CatalogResponse struct {
	Total  int             `json:"total" doc:"Total records across all groups"`
	Groups []GroupResponse `json:"groups" doc:"Groups in display order"`
}

// CatalogOutput wraps the catalog response for Huma.
type CatalogOutput struct {
	Body CatalogResponse
}

// ReloadResponse reports the dataset after a reload.
type ReloadResponse struct {
	Total       int `json:"total" doc:"Curated records after reload"`
	Rejected    int `json:"rejected" doc:"Rows dropped by validation"`
	ParseErrors int `json:"parse_errors" doc:"Rows dropped by the parser"`
}

// ReloadOutput wraps the reload response for Huma.
type ReloadOutput struct {
	Body ReloadResponse
}

// StatsOutput wraps catalog statistics for Huma.
type StatsOutput struct {
	Body catalog.Stats
}

// GetBannerInput controls how many covers the banner returns.
type GetBannerInput struct {
	Limit int `query:"limit" minimum:"0" maximum:"50" doc:"Number of covers to sample, 0 for the default"`
}

// BannerCover is one banner entry.
type BannerCover struct {
	ID    string `json:"id" doc:"Book ID"`
	Title string `json:"title" doc:"Title"`
	Cover string `json:"cover" doc:"Cover image path or URL, local preferred"`
}

// BannerResponse lists the sampled covers in display order.
type BannerResponse struct {
	Covers []BannerCover `json:"covers" doc:"Sampled covers"`
}

// BannerOutput wraps the banner response for Huma.
type BannerOutput struct {
	Body BannerResponse
}

// === Handlers ===

func (s *Server) handleGetCatalog(_ context.Context, input *GetCatalogInput) (*CatalogOutput, error) {
	view := domain.ViewState{
		Search:              input.Search,
		OnlyWithCover:       input.OnlyCover,
		OnlyWithDescription: input.OnlyDescription,
		SortKey:             input.Sort,
		GroupDimension:      input.Group,
	}
	view.Normalize()

	if err := s.validator.Validate(&view); err != nil {
		return nil, err
	}

	groups := s.catalog.View(view)

	resp := CatalogResponse{Groups: make([]GroupResponse, len(groups))}
	for i, g := range groups {
		books := make([]BookResponse, len(g.Records))
		for j, rec := range g.Records {
			books[j] = toBookResponse(rec)
		}
		resp.Groups[i] = GroupResponse{
			Value:     g.Value,
			Collapsed: g.Collapsed,
			Count:     len(g.Records),
			Books:     books,
		}
		resp.Total += len(g.Records)
	}

	return &CatalogOutput{Body: resp}, nil
}

func (s *Server) handleReloadCatalog(ctx context.Context, _ *struct{}) (*ReloadOutput, error) {
	if !s.reloadLimiter.Allow("reload") {
		return nil, domainerrors.RateLimited("catalog reload is rate limited")
	}

	if err := s.catalog.Reload(ctx); err != nil {
		return nil, err
	}

	ds := s.catalog.Dataset()
	return &ReloadOutput{
		Body: ReloadResponse{
			Total:       ds.Len(),
			Rejected:    ds.Rejected,
			ParseErrors: ds.ParseErrors,
		},
	}, nil
}

func (s *Server) handleGetCatalogStats(_ context.Context, _ *struct{}) (*StatsOutput, error) {
	return &StatsOutput{Body: s.catalog.Stats()}, nil
}

func (s *Server) handleGetBanner(_ context.Context, input *GetBannerInput) (*BannerOutput, error) {
	recs := s.catalog.Banner(input.Limit)

	covers := make([]BannerCover, len(recs))
	for i, rec := range recs {
		cover := rec.CoverLocal
		if cover == "" {
			cover = rec.CoverOnline
		}
		covers[i] = BannerCover{ID: rec.ID, Title: rec.Title, Cover: cover}
	}
	return &BannerOutput{Body: BannerResponse{Covers: covers}}, nil
}

// toBookResponse maps a curated record to its API shape.
func toBookResponse(rec *domain.Record) BookResponse {
	return BookResponse{
		ID:            rec.ID,
		Author:        rec.Author,
		AuthorDisplay: rec.AuthorDisplay,
		Title:         rec.Title,
		Signature:     rec.Signature,
		Shelf:         rec.Shelf,
		Subject:       rec.Subject,
		Category:      rec.Category,
		Year:          rec.Year,
		Language:      rec.Language,
		ISBN:          rec.ISBN,
		Publisher:     rec.Publisher,
		Description:   rec.Description,
		HasCover:      rec.HasCover(),
		Quality:       curate.QualityScore(rec),
	}
}
