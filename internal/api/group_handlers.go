package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerGroupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleGroup",
		Method:      http.MethodPost,
		Path:        "/api/v1/groups/toggle",
		Summary:     "Toggle group collapse",
		Description: "Flips the collapse override for a group and persists it immediately",
		Tags:        []string{"Groups"},
	}, s.handleToggleGroup)
}

// === DTOs ===

// ToggleGroupRequest identifies the group to toggle.
type ToggleGroupRequest struct {
	Dimension string `json:"dimension" validate:"required,oneof=category signature shelf subject publisher year language" doc:"Grouping dimension"`
	Value     string `json:"value" validate:"required,max=200" doc:"Group value, including the placeholder for blank fields"`
}

// ToggleGroupInput wraps the toggle request for Huma.
type ToggleGroupInput struct {
	Body ToggleGroupRequest
}

// ToggleGroupResponse reports the new collapse state.
type ToggleGroupResponse struct {
	Dimension string `json:"dimension" doc:"Grouping dimension"`
	Value     string `json:"value" doc:"Group value"`
	Collapsed bool   `json:"collapsed" doc:"Collapse state after the toggle"`
}

// ToggleGroupOutput wraps the toggle response for Huma.
type ToggleGroupOutput struct {
	Body ToggleGroupResponse
}

// === Handlers ===

func (s *Server) handleToggleGroup(_ context.Context, input *ToggleGroupInput) (*ToggleGroupOutput, error) {
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	collapsed := s.catalog.ToggleGroup(input.Body.Dimension, input.Body.Value)

	return &ToggleGroupOutput{
		Body: ToggleGroupResponse{
			Dimension: input.Body.Dimension,
			Value:     input.Body.Value,
			Collapsed: collapsed,
		},
	}, nil
}
