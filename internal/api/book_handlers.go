package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/katalogapp/katalog-server/internal/deeplink"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a single curated record by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookLink",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/link",
		Summary:     "Get book deep link",
		Description: "Returns the shareable URL fragment for a record",
		Tags:        []string{"Books"},
	}, s.handleGetBookLink)
}

// === DTOs ===

// GetBookInput contains parameters for fetching a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// BookLinkResponse carries the shareable fragment for a record.
type BookLinkResponse struct {
	ID       string `json:"id" doc:"Book ID"`
	Fragment string `json:"fragment" doc:"URL fragment of the form #b=<id>"`
}

// BookLinkOutput wraps the link response for Huma.
type BookLinkOutput struct {
	Body BookLinkResponse
}

// === Handlers ===

func (s *Server) handleGetBook(_ context.Context, input *GetBookInput) (*BookOutput, error) {
	rec, err := s.catalog.Detail(input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(rec)}, nil
}

func (s *Server) handleGetBookLink(_ context.Context, input *GetBookInput) (*BookLinkOutput, error) {
	rec, err := s.catalog.Detail(input.ID)
	if err != nil {
		return nil, err
	}
	return &BookLinkOutput{
		Body: BookLinkResponse{
			ID:       rec.ID,
			Fragment: deeplink.FormatFragment(rec.ID),
		},
	}, nil
}
