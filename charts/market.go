package charts

import (
	"sort"

	"housing-dashboard/models"
	"housing-dashboard/stats"
)

func lotAreaSalePrice(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Lot Area vs Sale Price by Zoning")
	lot := v.Numbers(models.ColLotArea)
	price := v.Numbers(models.ColSalePrice)
	year := v.Numbers(models.ColYearBuilt)

	for i, g := range groupBy(v.Texts(models.ColMSZoning)) {
		x, y, kept := pairsAt(lot, price, g.idx)
		custom := make([]any, len(kept))
		for k, row := range kept {
			custom[k] = nullable(year[row])
		}
		fig.Data = append(fig.Data, models.Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          g.name,
			X:             x,
			Y:             y,
			CustomData:    custom,
			HoverTemplate: "LotArea=%{x}<br>SalePrice=%{y}<br>YearBuilt=%{customdata}<extra>%{fullData.name}</extra>",
			Marker:        &models.Marker{Color: color(plasmaR, i), Size: 8, Opacity: 0.7},
		})
	}

	fig.Layout.XAxis.Title = title(models.ColLotArea)
	fig.Layout.YAxis.Title = title(models.ColSalePrice)
	fig.Layout.Legend = &models.Legend{Title: title("Zoning Type")}
	return themed(fig, theme)
}

// salePriceHistogram is the price histogram with a box plot per zoning in a
// marginal strip above it.
func salePriceHistogram(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Sale Prices")
	price := v.Numbers(models.ColSalePrice)

	for i, g := range groupBy(v.Texts(models.ColMSZoning)) {
		values := numbersAt(price, g.idx)
		c := color(plasmaR, i)
		fig.Data = append(fig.Data,
			models.Trace{
				Type:        "histogram",
				Name:        g.name,
				X:           values,
				NBinsX:      50,
				XAxis:       "x",
				YAxis:       "y",
				LegendGroup: g.name,
				Marker:      &models.Marker{Color: c},
			},
			models.Trace{
				Type:        "box",
				Name:        g.name,
				X:           values,
				XAxis:       "x",
				YAxis:       "y2",
				LegendGroup: g.name,
				ShowLegend:  ptr(false),
				Marker:      &models.Marker{Color: c},
			},
		)
	}

	fig.Layout.BarMode = "relative"
	fig.Layout.XAxis.Title = title(models.ColSalePrice)
	fig.Layout.YAxis.Title = title("count")
	fig.Layout.YAxis.Domain = []float64{0, 0.74}
	fig.Layout.YAxis2 = &models.Axis{Domain: []float64{0.75, 1}, ShowTickLabels: ptr(false)}
	fig.Layout.Legend = &models.Legend{Title: title(models.ColMSZoning)}
	return themed(fig, theme)
}

// CategoryMean is the average of a numeric column for one category.
type CategoryMean struct {
	Category string
	Mean     float64
}

// AvgPriceByBldgType returns mean sale price per building type, lowest
// first. Types with no priced record are skipped.
func AvgPriceByBldgType(v models.View) []CategoryMean {
	price := v.Numbers(models.ColSalePrice)
	var out []CategoryMean
	for _, g := range groupBy(v.Texts(models.ColBldgType)) {
		vals := make([]float64, len(g.idx))
		for k, row := range g.idx {
			vals[k] = price[row]
		}
		if stats.Count(vals) == 0 {
			continue
		}
		out = append(out, CategoryMean{Category: g.name, Mean: stats.Mean(vals)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean < out[j].Mean })
	return out
}

func avgPriceByBldgType(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Avg Price by Building Type")
	means := AvgPriceByBldgType(v)

	if len(means) > 0 {
		x := make([]any, len(means))
		y := make([]any, len(means))
		colors := make([]float64, len(means))
		for i, m := range means {
			x[i] = m.Mean
			y[i] = m.Category
			colors[i] = m.Mean
		}
		fig.Data = append(fig.Data, models.Trace{
			Type:         "bar",
			Orientation:  "h",
			Name:         models.ColSalePrice,
			X:            x,
			Y:            y,
			TextTemplate: "%{x:,.0f}",
			Marker: &models.Marker{
				Color:      colors,
				ColorScale: scale(plasmaR),
				ShowScale:  ptr(true),
			},
		})
	}

	fig.Layout.XAxis.Title = title(models.ColSalePrice)
	fig.Layout.YAxis.Title = title(models.ColBldgType)
	return themed(fig, theme)
}

// ShareCount is one pie slice.
type ShareCount struct {
	Category string
	Count    int
}

// BldgTypeShare counts records per building type, largest first; ties keep
// first-appearance order.
func BldgTypeShare(v models.View) []ShareCount {
	var out []ShareCount
	for _, g := range groupBy(v.Texts(models.ColBldgType)) {
		out = append(out, ShareCount{Category: g.name, Count: len(g.idx)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func bldgTypeShare(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Building Type Share")
	shares := BldgTypeShare(v)

	if len(shares) > 0 {
		labels := make([]string, len(shares))
		values := make([]float64, len(shares))
		colors := make([]string, len(shares))
		for i, s := range shares {
			labels[i] = s.Category
			values[i] = float64(s.Count)
			colors[i] = color(plasmaR, i)
		}
		fig.Data = append(fig.Data, models.Trace{
			Type:   "pie",
			Labels: labels,
			Values: values,
			Hole:   0.6,
			Sort:   ptr(false),
			Marker: &models.Marker{Colors: colors},
		})
	}

	fig.Layout.XAxis = nil
	fig.Layout.YAxis = nil
	fig.Layout.Legend = &models.Legend{Title: title(models.ColBldgType)}
	return themed(fig, theme)
}
