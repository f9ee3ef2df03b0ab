package query

import (
	"sort"
	"strings"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// CollapseFunc decides whether a group starts collapsed. It receives
// the group value and its size.
type CollapseFunc func(value string, size int) bool

// GroupBy partitions an already-projected record slice along the given
// dimension. Records keep their projection order inside each group;
// groups themselves are ordered by catalog collation with the
// empty-value group last. With domain.GroupNone the whole projection
// comes back as a single expanded group.
func (e *Engine) GroupBy(recs []*domain.Record, dimension string, collapsed CollapseFunc) []domain.Group {
	if dimension == "" || dimension == domain.GroupNone {
		return []domain.Group{{Records: recs}}
	}

	byValue := make(map[string][]*domain.Record)
	order := make([]string, 0)
	for _, rec := range recs {
		value := groupValue(rec, dimension)
		if _, seen := byValue[value]; !seen {
			order = append(order, value)
		}
		byValue[value] = append(byValue[value], rec)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a == domain.EmptyGroupValue || b == domain.EmptyGroupValue {
			return b == domain.EmptyGroupValue && a != domain.EmptyGroupValue
		}
		return e.cmp.Less(a, b)
	})

	groups := make([]domain.Group, 0, len(order))
	for _, value := range order {
		members := byValue[value]
		g := domain.Group{Value: value, Records: members}
		if collapsed != nil {
			g.Collapsed = collapsed(value, len(members))
		}
		groups = append(groups, g)
	}
	return groups
}

// groupValue derives a record's group membership for one dimension.
// Blank values fold into the shared placeholder group.
func groupValue(rec *domain.Record, dimension string) string {
	var v string
	if dimension == domain.GroupCategory {
		v = rec.Category
	} else {
		v = rec.Field(dimension)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.EmptyGroupValue
	}
	return v
}
