package charts

import (
	"math"

	"housing-dashboard/models"
)

// plasma is plotly's sequential Plasma palette.
var plasma = []string{
	"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
	"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
}

// plasmaR is Plasma reversed, used for discrete series colors.
var plasmaR = reversed(plasma)

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[len(in)-1-i] = c
	}
	return out
}

func color(palette []string, i int) string {
	return palette[i%len(palette)]
}

func scale(palette []string) models.ColorScale {
	cs := make(models.ColorScale, len(palette))
	for i, c := range palette {
		cs[i] = [2]any{float64(i) / float64(len(palette)-1), c}
	}
	return cs
}

func ptr[T any](v T) *T { return &v }

func title(text string) *models.Title { return &models.Title{Text: text} }

// newFigure returns an empty figure with both axes present so that theming
// can color them.
func newFigure(name string) *models.Figure {
	return &models.Figure{
		Data: []models.Trace{},
		Layout: models.Layout{
			Title: models.Title{Text: name},
			XAxis: &models.Axis{},
			YAxis: &models.Axis{},
		},
	}
}

// themed applies the theme's styling fields and nothing else.
func themed(fig *models.Figure, theme models.Theme) *models.Figure {
	st := theme.Style()
	fig.Template = st.Template
	fig.Layout.Template = st.PlotTemplate(plasmaR)
	fig.Layout.PaperBGColor = st.PaperColor
	fig.Layout.PlotBGColor = st.PlotColor
	fig.Layout.Font.Color = st.FontColor
	for _, ax := range []*models.Axis{fig.Layout.XAxis, fig.Layout.YAxis, fig.Layout.YAxis2} {
		if ax != nil {
			ax.GridColor = st.GridColor
			ax.ZeroLineColor = st.GridColor
		}
	}
	for i := range fig.Layout.Shapes {
		fig.Layout.Shapes[i].Line.Color = st.ReferenceLine
	}
	return fig
}

// group is the row positions sharing one category label.
type group struct {
	name string
	idx  []int
}

// groupBy buckets positions by label in order of first appearance.
// Missing labels are left out.
func groupBy(labels []string) []group {
	pos := make(map[string]int)
	var groups []group
	for i, l := range labels {
		if l == "" {
			continue
		}
		k, ok := pos[l]
		if !ok {
			k = len(groups)
			pos[l] = k
			groups = append(groups, group{name: l})
		}
		groups[k].idx = append(groups[k].idx, i)
	}
	return groups
}

// numbersAt collects the present values of xs at the given positions.
func numbersAt(xs []float64, idx []int) []any {
	out := make([]any, 0, len(idx))
	for _, i := range idx {
		if !math.IsNaN(xs[i]) {
			out = append(out, xs[i])
		}
	}
	return out
}

// pairsAt collects positions where both xs and ys are present.
func pairsAt(xs, ys []float64, idx []int) (x, y []any, kept []int) {
	for _, i := range idx {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		x = append(x, xs[i])
		y = append(y, ys[i])
		kept = append(kept, i)
	}
	return x, y, kept
}

// nullable turns NaN into a JSON null.
func nullable(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}
