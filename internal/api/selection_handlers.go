package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSelectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "resolveSelection",
		Method:      http.MethodGet,
		Path:        "/api/v1/selection",
		Summary:     "Resolve a deep link",
		Description: "Resolves a URL fragment to a record. Unmatched or malformed fragments resolve to no selection without error",
		Tags:        []string{"Selection"},
	}, s.handleResolveSelection)

	huma.Register(s.api, huma.Operation{
		OperationID: "selectBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/selection",
		Summary:     "Select a book",
		Description: "Marks a record as selected, capturing the caller's scroll offset, and returns the shareable fragment",
		Tags:        []string{"Selection"},
	}, s.handleSelectBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deselectBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/selection",
		Summary:     "Clear the selection",
		Description: "Clears the selection and returns the scroll offset the caller should restore, if one was captured",
		Tags:        []string{"Selection"},
	}, s.handleDeselectBook)
}

// === DTOs ===

// ResolveSelectionInput carries the fragment to resolve.
type ResolveSelectionInput struct {
	Fragment string `query:"fragment" doc:"URL fragment of the form #b=<id>"`
}

// SelectionResponse describes the resolution outcome.
type SelectionResponse struct {
	Selected bool          `json:"selected" doc:"Whether the fragment matched a record"`
	Book     *BookResponse `json:"book,omitempty" doc:"The matched record"`
}

// SelectionOutput wraps the selection response for Huma.
type SelectionOutput struct {
	Body SelectionResponse
}

// SelectBookRequest identifies the record being opened.
type SelectBookRequest struct {
	ID           string  `json:"id" validate:"required" doc:"Book ID"`
	ScrollOffset float64 `json:"scroll_offset" validate:"gte=0" doc:"Caller's scroll position at selection time"`
}

// SelectBookInput wraps the select request for Huma.
type SelectBookInput struct {
	Body SelectBookRequest
}

// SelectBookOutput wraps the select response for Huma.
type SelectBookOutput struct {
	Body BookLinkResponse
}

// DeselectResponse tells the caller what to restore.
type DeselectResponse struct {
	HadSelection  bool     `json:"had_selection" doc:"Whether a record was selected"`
	RestoreOffset *float64 `json:"restore_offset,omitempty" doc:"Scroll offset to restore after the view settles"`
}

// DeselectOutput wraps the deselect response for Huma.
type DeselectOutput struct {
	Body DeselectResponse
}

// === Handlers ===

func (s *Server) handleResolveSelection(_ context.Context, input *ResolveSelectionInput) (*SelectionOutput, error) {
	rec := s.catalog.Links().Resolve(s.catalog.Dataset(), input.Fragment)
	if rec == nil {
		return &SelectionOutput{Body: SelectionResponse{Selected: false}}, nil
	}

	body := toBookResponse(rec)
	return &SelectionOutput{Body: SelectionResponse{Selected: true, Book: &body}}, nil
}

func (s *Server) handleSelectBook(_ context.Context, input *SelectBookInput) (*SelectBookOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	rec, err := s.catalog.Detail(input.Body.ID)
	if err != nil {
		return nil, err
	}

	fragment := s.catalog.Links().Select(rec, input.Body.ScrollOffset)
	return &SelectBookOutput{
		Body: BookLinkResponse{ID: rec.ID, Fragment: fragment},
	}, nil
}

func (s *Server) handleDeselectBook(_ context.Context, _ *struct{}) (*DeselectOutput, error) {
	links := s.catalog.Links()

	resp := DeselectResponse{HadSelection: links.SelectedID() != ""}
	if offset, ok := links.PendingScroll(); ok {
		resp.RestoreOffset = &offset
	}

	// The restore itself happens caller-side after the view settles;
	// passing nil still consumes the captured slot.
	links.Deselect(nil)

	return &DeselectOutput{Body: resp}, nil
}
