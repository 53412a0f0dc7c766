package charts

import (
	"math"
	"sort"

	"housing-dashboard/models"
	"housing-dashboard/stats"
)

// Ranking limits for the sale price correlation chart.
const (
	rankHead = 10
	rankTail = 5
)

// Correlations is the pairwise Pearson matrix over the numeric columns of a
// view that hold at least one value.
type Correlations struct {
	Columns []string
	Matrix  [][]float64
}

// CorrelationMatrix computes Correlations for v.
func CorrelationMatrix(v models.View) Correlations {
	var names []string
	var cols [][]float64
	for _, name := range v.Schema().NumericNames() {
		col := v.Numbers(name)
		if stats.Count(col) == 0 {
			continue
		}
		names = append(names, name)
		cols = append(cols, col)
	}
	return Correlations{Columns: names, Matrix: stats.CorrelationMatrix(cols)}
}

// Masked hides the upper triangle including the diagonal, so only entries
// strictly below the diagonal remain. Undefined correlations are nil too.
func (c Correlations) Masked() [][]*float64 {
	out := make([][]*float64, len(c.Matrix))
	for i, row := range c.Matrix {
		out[i] = make([]*float64, len(row))
		for j := 0; j < i; j++ {
			if r := row[j]; !math.IsNaN(r) {
				out[i][j] = ptr(r)
			}
		}
	}
	return out
}

func correlationHeatmap(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Feature Correlation Heatmap")
	corr := CorrelationMatrix(v)

	if len(corr.Columns) > 0 {
		labels := make([]any, len(corr.Columns))
		for i, c := range corr.Columns {
			labels[i] = c
		}
		fig.Data = append(fig.Data, models.Trace{
			Type:          "heatmap",
			Z:             corr.Masked(),
			X:             labels,
			Y:             labels,
			ZMin:          ptr(-1.0),
			ZMax:          ptr(1.0),
			ColorScale:    scale(plasma),
			TextTemplate:  "%{z:.2f}",
			HoverTemplate: "%{x} / %{y}<br>Correlation=%{z:.2f}<extra></extra>",
			ColorBar:      &models.ColorBar{Title: models.Title{Text: "Correlation"}, Thickness: 20},
		})
	}

	fig.Layout.Height = 600
	fig.Layout.XAxis.TickAngle = 45
	fig.Layout.XAxis.TickFont = &models.Font{Size: 10}
	fig.Layout.YAxis.TickFont = &models.Font{Size: 10}
	// row 0 at the top, as in a printed matrix
	fig.Layout.YAxis.AutoRange = "reversed"
	return themed(fig, theme)
}

// Ranked is one column's correlation with the sale price.
type Ranked struct {
	Column string
	R      float64
}

// SalePriceCorrelations correlates every other numeric column with the sale
// price, sorts descending and keeps the strongest positive and negative
// ends. Columns whose correlation is undefined are left out.
func SalePriceCorrelations(v models.View) []Ranked {
	if _, ok := v.Schema().Index(models.ColSalePrice); !ok {
		return nil
	}
	price := v.Numbers(models.ColSalePrice)

	var all []Ranked
	for _, name := range v.Schema().NumericNames() {
		if name == models.ColSalePrice {
			continue
		}
		r, ok := stats.Pearson(v.Numbers(name), price)
		if !ok {
			continue
		}
		all = append(all, Ranked{Column: name, R: r})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].R > all[j].R })
	return headTail(all, rankHead, rankTail)
}

// headTail keeps the first head and last tail entries without repeating
// any when the two ends overlap.
func headTail(all []Ranked, head, tail int) []Ranked {
	if len(all) <= head+tail {
		return all
	}
	out := make([]Ranked, 0, head+tail)
	out = append(out, all[:head]...)
	return append(out, all[len(all)-tail:]...)
}

func salePriceCorrelation(v models.View, theme models.Theme) *models.Figure {
	fig := newFigure("Top Correlations with Sale Price")
	ranked := SalePriceCorrelations(v)

	if len(ranked) > 0 {
		x := make([]any, len(ranked))
		y := make([]any, len(ranked))
		colors := make([]float64, len(ranked))
		for i, r := range ranked {
			x[i] = r.R
			y[i] = r.Column
			colors[i] = r.R
		}
		fig.Data = append(fig.Data, models.Trace{
			Type:          "bar",
			Orientation:   "h",
			X:             x,
			Y:             y,
			HoverTemplate: "%{y}: %{x:.3f}<extra></extra>",
			Marker: &models.Marker{
				Color:      colors,
				ColorScale: scale(plasma),
				CMin:       ptr(-1.0),
				CMax:       ptr(1.0),
				ShowScale:  ptr(false),
			},
		})
	}

	fig.Layout.Height = 600
	fig.Layout.Shapes = []models.Shape{{
		Type: "line",
		X0:   0, Y0: -0.5,
		X1: 0, Y1: float64(len(ranked)) - 0.5,
		Line: models.Line{Width: 1, Dash: "dash"},
	}}
	fig.Layout.XAxis.Title = title("Correlation with Sale Price")
	fig.Layout.XAxis.Range = []float64{-1, 1}
	fig.Layout.YAxis.Title = title("")
	fig.Layout.YAxis.AutoRange = "reversed"
	return themed(fig, theme)
}
