package models

// Theme is the light/dark visual mode.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme returns the theme named by s, or fallback when s is not a
// known theme.
func ParseTheme(s string, fallback Theme) Theme {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s)
	}
	return fallback
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Style is the set of colors a theme applies to charts and containers.
type Style struct {
	Template      string
	PaperColor    string
	PlotColor     string
	FontColor     string
	GridColor     string
	CardColor     string
	HeaderColor   string
	ReferenceLine string
}

// Style returns the styling for t. Unknown themes style as dark.
func (t Theme) Style() Style {
	if t == ThemeLight {
		return Style{
			Template:      "plotly_white",
			PaperColor:    "#ffffff",
			PlotColor:     "#ffffff",
			FontColor:     "#2a3f5f",
			GridColor:     "#ebf0f8",
			CardColor:     "white",
			HeaderColor:   "#e1e1e1",
			ReferenceLine: "black",
		}
	}
	return Style{
		Template:      "plotly_dark",
		PaperColor:    "#111111",
		PlotColor:     "#111111",
		FontColor:     "#f2f5fa",
		GridColor:     "#283442",
		CardColor:     "#1e1e1e",
		HeaderColor:   "#111111",
		ReferenceLine: "white",
	}
}

// PlotTemplate builds the plotly template for the style. colorway is the
// default discrete color sequence.
func (s Style) PlotTemplate(colorway []string) *PlotTemplate {
	axis := Axis{GridColor: s.GridColor, ZeroLineColor: s.GridColor}
	return &PlotTemplate{Layout: TemplateLayout{
		PaperBGColor: s.PaperColor,
		PlotBGColor:  s.PlotColor,
		Font:         Font{Color: s.FontColor},
		ColorWay:     append([]string(nil), colorway...),
		XAxis:        axis,
		YAxis:        axis,
	}}
}

// TextColor is the body text color used on cards and tables.
func (t Theme) TextColor() string {
	if t == ThemeLight {
		return "black"
	}
	return "white"
}
