// Package pages describes the four dashboard layouts and the route table
// that selects between them. Layouts are plain values built from their
// arguments; the HTML for them comes from the templates in this package.
package pages

import "housing-dashboard/charts"

// Kind names one page layout. Each kind with a filter bar also names its
// filter group.
type Kind string

const (
	Trends   Kind = "trends"
	Market   Kind = "market"
	Insights Kind = "insights"
	Data     Kind = "data"
)

// routes is matched exactly. The insights family keeps both spellings of
// its path: /insights serves the market overview and /insghts the
// correlation insights, as linked from the navigation bar.
var routes = map[string]Kind{
	"/":         Trends,
	"/insights": Market,
	"/insghts":  Insights,
	"/data":     Data,
}

// Route resolves a URL path to a layout. Unknown paths fall back to Trends.
func Route(path string) Kind {
	if k, ok := routes[path]; ok {
		return k
	}
	return Trends
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Label string
	Path  string
}

// Nav lists the navigation bar in display order.
func Nav() []NavLink {
	return []NavLink{
		{Label: "Trends & Analysis", Path: "/"},
		{Label: "Market Overview", Path: "/insights"},
		{Label: "Data Table", Path: "/data"},
		{Label: "Insights", Path: "/insghts"},
	}
}

// FilterGroups lists the kinds that carry their own filter bar.
func FilterGroups() []Kind {
	return []Kind{Trends, Market, Insights}
}

// Charts is the fixed chart set of each layout, in grid order.
func Charts(kind Kind) []charts.Kind {
	switch kind {
	case Trends:
		return []charts.Kind{
			charts.KindSalePriceDistribution,
			charts.KindYearBuiltSalePrice,
			charts.KindConditionSalePrice,
			charts.KindAvgBasementByYear,
		}
	case Market:
		return []charts.Kind{
			charts.KindLotAreaSalePrice,
			charts.KindSalePriceHistogram,
			charts.KindAvgPriceByBldgType,
			charts.KindBldgTypeShare,
		}
	case Insights:
		return []charts.Kind{
			charts.KindCorrelationHeatmap,
			charts.KindSalePriceCorrelation,
		}
	}
	return nil
}
