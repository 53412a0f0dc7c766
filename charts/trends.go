package charts

import (
	"math"
	"sort"
	"strconv"

	"housing-dashboard/models"
	"housing-dashboard/stats"
)

func salePriceDistribution(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Distribution of Sale Prices")
	price := v.Numbers(models.ColSalePrice)

	for i, g := range groupBy(v.Texts(models.ColMSZoning)) {
		fig.Data = append(fig.Data, models.Trace{
			Type:   "histogram",
			Name:   g.name,
			X:      numbersAt(price, g.idx),
			NBinsX: 50,
			Marker: &models.Marker{Color: color(plasmaR, i)},
		})
	}

	fig.Layout.BarMode = "relative"
	fig.Layout.XAxis.Title = title(models.ColSalePrice)
	fig.Layout.YAxis.Title = title("count")
	fig.Layout.Legend = &models.Legend{Title: title(models.ColMSZoning)}
	return themed(fig, theme)
}

func yearBuiltSalePrice(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Year Built vs Sale Price")
	year := v.Numbers(models.ColYearBuilt)
	price := v.Numbers(models.ColSalePrice)
	cond := v.Numbers(models.ColOverallCond)

	for i, g := range groupBy(v.Texts(models.ColMSZoning)) {
		x, y, kept := pairsAt(year, price, g.idx)
		custom := make([]any, len(kept))
		for k, row := range kept {
			custom[k] = nullable(cond[row])
		}
		fig.Data = append(fig.Data, models.Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          g.name,
			X:             x,
			Y:             y,
			CustomData:    custom,
			HoverTemplate: "YearBuilt=%{x}<br>SalePrice=%{y}<br>OverallCond=%{customdata}<extra>%{fullData.name}</extra>",
			Marker:        &models.Marker{Color: color(plasmaR, i)},
		})
	}

	fig.Layout.XAxis.Title = title(models.ColYearBuilt)
	fig.Layout.YAxis.Title = title(models.ColSalePrice)
	fig.Layout.Legend = &models.Legend{Title: title(models.ColMSZoning)}
	return themed(fig, theme)
}

func conditionSalePrice(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Sale Price by Overall Condition")
	cond := v.Numbers(models.ColOverallCond)
	price := v.Numbers(models.ColSalePrice)

	// one box per condition rating, lowest rating first
	byCond := make(map[float64][]int)
	for i, c := range cond {
		if math.IsNaN(c) || math.IsNaN(price[i]) {
			continue
		}
		byCond[c] = append(byCond[c], i)
	}
	levels := make([]float64, 0, len(byCond))
	for c := range byCond {
		levels = append(levels, c)
	}
	sort.Float64s(levels)

	for i, c := range levels {
		rows := byCond[c]
		x := make([]any, len(rows))
		y := make([]any, len(rows))
		for k, row := range rows {
			x[k] = c
			y[k] = price[row]
		}
		fig.Data = append(fig.Data, models.Trace{
			Type:   "box",
			Name:   strconv.FormatFloat(c, 'f', -1, 64),
			X:      x,
			Y:      y,
			Marker: &models.Marker{Color: color(plasmaR, i)},
		})
	}

	fig.Layout.XAxis.Title = title(models.ColOverallCond)
	fig.Layout.YAxis.Title = title(models.ColSalePrice)
	fig.Layout.Legend = &models.Legend{Title: title(models.ColOverallCond)}
	return themed(fig, theme)
}

// BasementByYear returns the mean basement area per build year in
// increasing year order. Years without any basement figure are skipped.
func BasementByYear(v models.View) (years, means []float64) {
	year := v.Numbers(models.ColYearBuilt)
	bsmt := v.Numbers(models.ColTotalBsmtSF)

	byYear := make(map[float64][]float64)
	for i, y := range year {
		if math.IsNaN(y) {
			continue
		}
		byYear[y] = append(byYear[y], bsmt[i])
	}
	for y, vals := range byYear {
		if stats.Count(vals) == 0 {
			continue
		}
		years = append(years, y)
	}
	sort.Float64s(years)
	means = make([]float64, len(years))
	for i, y := range years {
		means[i] = stats.Mean(byYear[y])
	}
	return years, means
}

func avgBasementByYear(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Average Basement Area by Year Built")
	years, means := BasementByYear(v)

	if len(years) > 0 {
		x := make([]any, len(years))
		y := make([]any, len(means))
		for i := range years {
			x[i] = years[i]
			y[i] = means[i]
		}
		fig.Data = append(fig.Data, models.Trace{
			Type: "scatter",
			Mode: "lines",
			Name: models.ColTotalBsmtSF,
			X:    x,
			Y:    y,
			Line: &models.Line{Color: color(plasmaR, 0)},
		})
	}

	fig.Layout.XAxis.Title = title(models.ColYearBuilt)
	fig.Layout.YAxis.Title = title(models.ColTotalBsmtSF)
	return themed(fig, theme)
}
