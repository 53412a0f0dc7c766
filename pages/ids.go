package pages

import (
	"strings"

	"housing-dashboard/charts"
)

// Component ids are "element.property": the DOM element id and the property
// of it that a callback reads or writes.
const (
	URLPathname  = "url.pathname"
	ThemeSwitch  = "theme-switch.value"
	PageContent  = "page-content.children"
	SummaryCards = "summary-cards.children"
)

// ZoningFilter is the zoning dropdown of a filter group.
func ZoningFilter(group Kind) string {
	return string(group) + "-zoning-filter.value"
}

// BldgTypeFilter is the building type dropdown of a filter group.
func BldgTypeFilter(group Kind) string {
	return string(group) + "-bldgtype-filter.value"
}

// Figure is the figure property of a chart container.
func Figure(kind charts.Kind) string {
	return string(kind) + ".figure"
}

// Element strips the property from a component id.
func Element(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}

// Components lists every component id present on a layout. The navigation
// bar, theme switch and page container exist on every page.
func Components(kind Kind) []string {
	ids := []string{URLPathname, ThemeSwitch, PageContent}
	if kind == Data {
		return ids
	}
	ids = append(ids, ZoningFilter(kind), BldgTypeFilter(kind))
	if kind == Trends {
		ids = append(ids, SummaryCards)
	}
	for _, c := range Charts(kind) {
		ids = append(ids, Figure(c))
	}
	return ids
}
