package extensions

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortOrder maps a declared order to its sorting key. Unspecified orders
// (zero or negative) sort after every explicitly ordered entry.
func sortOrder(order int) int {
	if order <= 0 {
		return math.MaxInt
	}
	return order
}

// buildSidebar groups the non-hidden sidebar routes into sections keyed by
// the literal section title. A section inherits its order from the first
// route that created it. Sections and items sort by order ascending, with
// ties broken by locale-aware comparison of title and label.
func buildSidebar(routes []*RegisteredRoute, tag language.Tag) []SidebarSection {
	collator := collate.New(tag)

	indexByID := make(map[string]int)
	sections := make([]SidebarSection, 0)

	for _, route := range routes {
		if route.Sidebar == nil || route.Sidebar.Hidden {
			continue
		}

		idx, ok := indexByID[route.Sidebar.Section]
		if !ok {
			idx = len(sections)
			indexByID[route.Sidebar.Section] = idx
			sections = append(sections, SidebarSection{
				ID:    route.Sidebar.Section,
				Title: route.Sidebar.Section,
				Order: route.Sidebar.Order,
			})
		}

		sections[idx].Items = append(sections[idx].Items, SidebarItem{
			Route:    route,
			Disabled: !route.Enabled,
		})
	}

	slices.SortStableFunc(sections, func(a, b SidebarSection) int {
		if diff := cmp.Compare(sortOrder(a.Order), sortOrder(b.Order)); diff != 0 {
			return diff
		}
		return collator.CompareString(a.Title, b.Title)
	})

	for i := range sections {
		slices.SortStableFunc(sections[i].Items, func(a, b SidebarItem) int {
			if diff := cmp.Compare(sortOrder(a.Route.Sidebar.Order), sortOrder(b.Route.Sidebar.Order)); diff != 0 {
				return diff
			}
			return collator.CompareString(a.Route.Label, b.Route.Label)
		})
	}

	return sections
}
