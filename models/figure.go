package models

// Selection is the categorical filter state of one filter bar. An empty
// field places no constraint on that column.
type Selection struct {
	Zoning   string `json:"zoning"`
	BldgType string `json:"bldgType"`
}

// Figure is a chart description in plotly.js figure format. It carries no
// state beyond the data it was built from. Template names the theme whose
// PlotTemplate is attached to the layout.
type Figure struct {
	Data     []Trace `json:"data"`
	Layout   Layout  `json:"layout"`
	Template string  `json:"template"`
}

// Points counts the data points across all traces.
func (f *Figure) Points() int {
	n := 0
	for _, t := range f.Data {
		n += t.Points()
	}
	return n
}

// Trace is one plotly trace. Only the fields a builder sets are emitted.
type Trace struct {
	Type          string       `json:"type"`
	Name          string       `json:"name,omitempty"`
	Mode          string       `json:"mode,omitempty"`
	Orientation   string       `json:"orientation,omitempty"`
	X             []any        `json:"x,omitempty"`
	Y             []any        `json:"y,omitempty"`
	Z             [][]*float64 `json:"z,omitempty"`
	Labels        []string     `json:"labels,omitempty"`
	Values        []float64    `json:"values,omitempty"`
	Text          []string     `json:"text,omitempty"`
	CustomData    []any        `json:"customdata,omitempty"`
	HoverTemplate string       `json:"hovertemplate,omitempty"`
	TextTemplate  string       `json:"texttemplate,omitempty"`
	NBinsX        int          `json:"nbinsx,omitempty"`
	Hole          float64      `json:"hole,omitempty"`
	Opacity       float64      `json:"opacity,omitempty"`
	XAxis         string       `json:"xaxis,omitempty"`
	YAxis         string       `json:"yaxis,omitempty"`
	LegendGroup   string       `json:"legendgroup,omitempty"`
	ShowLegend    *bool        `json:"showlegend,omitempty"`
	Marker        *Marker      `json:"marker,omitempty"`
	Line          *Line        `json:"line,omitempty"`
	ColorScale    ColorScale   `json:"colorscale,omitempty"`
	ZMin          *float64     `json:"zmin,omitempty"`
	ZMax          *float64     `json:"zmax,omitempty"`
	ColorBar      *ColorBar    `json:"colorbar,omitempty"`
	Sort          *bool        `json:"sort,omitempty"`
}

// Points counts the data points in the trace.
func (t Trace) Points() int {
	switch {
	case t.Z != nil:
		n := 0
		for _, row := range t.Z {
			for _, v := range row {
				if v != nil {
					n++
				}
			}
		}
		return n
	case t.Values != nil:
		return len(t.Values)
	}
	if len(t.Y) > len(t.X) {
		return len(t.Y)
	}
	return len(t.X)
}

// ColorScale is a plotly colorscale: pairs of (position in [0,1], color).
type ColorScale [][2]any

// Marker styles trace marks.
type Marker struct {
	Color      any        `json:"color,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	Size       float64    `json:"size,omitempty"`
	Opacity    float64    `json:"opacity,omitempty"`
	ColorScale ColorScale `json:"colorscale,omitempty"`
	CMin       *float64   `json:"cmin,omitempty"`
	CMax       *float64   `json:"cmax,omitempty"`
	ShowScale  *bool      `json:"showscale,omitempty"`
}

// Line styles lines and shape borders.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// ColorBar titles a continuous color scale.
type ColorBar struct {
	Title     Title   `json:"title"`
	Thickness float64 `json:"thickness,omitempty"`
}

// Title is a plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Font is a plotly font object.
type Font struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Axis configures one layout axis.
type Axis struct {
	Title          *Title    `json:"title,omitempty"`
	Range          []float64 `json:"range,omitempty"`
	AutoRange      any       `json:"autorange,omitempty"`
	TickAngle      float64   `json:"tickangle,omitempty"`
	TickFont       *Font     `json:"tickfont,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	GridColor      string    `json:"gridcolor,omitempty"`
	ZeroLineColor  string    `json:"zerolinecolor,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	Type           string    `json:"type,omitempty"`
	Matches        string    `json:"matches,omitempty"`
}

// Legend configures the layout legend.
type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// Shape is a layout decoration such as a reference line.
type Shape struct {
	Type string  `json:"type"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	Line Line    `json:"line"`
}

// Layout is the plotly layout. Colors are filled in from the theme.
type Layout struct {
	Title        Title   `json:"title"`
	Height       int     `json:"height,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor"`
	PlotBGColor  string  `json:"plot_bgcolor"`
	Font         Font    `json:"font"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	YAxis2       *Axis   `json:"yaxis2,omitempty"`
	BarMode      string  `json:"barmode,omitempty"`
	Legend       *Legend `json:"legend,omitempty"`
	Shapes       []Shape `json:"shapes,omitempty"`
	ShowLegend   *bool   `json:"showlegend,omitempty"`

	Template *PlotTemplate `json:"template,omitempty"`
}

// PlotTemplate is a plotly.js layout template. Attributes set on the
// figure's own layout win over it.
type PlotTemplate struct {
	Layout TemplateLayout `json:"layout"`
}

// TemplateLayout holds the layout defaults a template supplies.
type TemplateLayout struct {
	PaperBGColor string   `json:"paper_bgcolor"`
	PlotBGColor  string   `json:"plot_bgcolor"`
	Font         Font     `json:"font"`
	ColorWay     []string `json:"colorway,omitempty"`
	XAxis        Axis     `json:"xaxis"`
	YAxis        Axis     `json:"yaxis"`
}
