package domain

// Sort keys with special handling in the query engine. Any other value
// is treated as a raw column name.
const (
	SortAuthor  = "author"
	SortTitle   = "title"
	SortYear    = "year"
	SortQuality = "quality"
)

// Grouping dimensions with special handling. Any other value selects
// the raw column of that name.
const (
	GroupNone     = "none"
	GroupCategory = "category"
)

// EmptyGroupValue stands in for records whose grouping field is blank.
const EmptyGroupValue = "—"

// ViewState captures the user's current view controls. It lives for a
// session only and is never persisted; every change triggers a full
// recomputation of the projection.
type ViewState struct {
	Search              string `json:"search" validate:"max=200"`
	OnlyWithCover       bool   `json:"only_with_cover"`
	OnlyWithDescription bool   `json:"only_with_description"`
	SortKey             string `json:"sort_key" validate:"omitempty,oneof=author title year signature shelf subject quality publisher language"`
	GroupDimension      string `json:"group_dimension" validate:"omitempty,oneof=none category signature shelf subject publisher year language"`
}

// Normalize fills in defaults for zero-valued controls.
func (v *ViewState) Normalize() {
	if v.SortKey == "" {
		v.SortKey = SortAuthor
	}
	if v.GroupDimension == "" {
		v.GroupDimension = GroupNone
	}
}

// Group is one partition of the projected view.
type Group struct {
	Value     string    `json:"value"`
	Collapsed bool      `json:"collapsed"`
	Records   []*Record `json:"records"`
}
