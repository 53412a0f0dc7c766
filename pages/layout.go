package pages

import (
	"housing-dashboard/charts"
	"housing-dashboard/models"
)

// PageSize is the number of rows per page of the data table.
const PageSize = 10

// Page is one rendered layout. Charts are empty containers: their figures
// are delivered separately as callback outputs.
type Page struct {
	Kind      Kind
	Title     string
	Theme     models.Theme
	Style     models.Style
	TextColor string
	Filters   *FilterBar
	Summary   bool
	Sections  []Section
	Content   *Content
	Table     *DataTable
}

// FilterBar is the pair of dropdowns at the top of a chart page.
type FilterBar struct {
	Group    Kind
	Zoning   Dropdown
	BldgType Dropdown
}

// Dropdown is a clearable single-choice select.
type Dropdown struct {
	ID          string
	Label       string
	Placeholder string
	Options     []string
	Selected    string
}

// Section is a card holding a grid of charts.
type Section struct {
	Header string
	Charts []ChartSlot
}

// ChartSlot is the container of one chart.
type ChartSlot struct {
	ID      string
	Heading string
}

// DataTable is one page of the raw dataset.
type DataTable struct {
	Columns []string
	Rows    [][]string
	Page    int
	Pages   int
	Total   int
}

// HasPrev reports whether a previous page exists.
func (d *DataTable) HasPrev() bool { return d.Page > 1 }

// HasNext reports whether a following page exists.
func (d *DataTable) HasNext() bool { return d.Page < d.Pages }

// Options are the per-session inputs of a layout.
type Options struct {
	Selection models.Selection
	TablePage int
}

// Builder produces layouts over one table. Dropdown options are taken from
// the table once, at construction.
type Builder struct {
	table     *models.Table
	content   *Content
	zonings   []string
	bldgTypes []string
}

// NewBuilder creates a Builder. A nil content shows no insight text.
func NewBuilder(table *models.Table, content *Content) *Builder {
	if content == nil {
		content = &Content{}
	}
	return &Builder{
		table:     table,
		content:   content,
		zonings:   table.Distinct(models.ColMSZoning),
		bldgTypes: table.Distinct(models.ColBldgType),
	}
}

// Build lays out kind for the given theme and options.
func (b *Builder) Build(kind Kind, theme models.Theme, opts Options) *Page {
	p := &Page{
		Kind:      kind,
		Theme:     theme,
		Style:     theme.Style(),
		TextColor: theme.TextColor(),
	}

	switch kind {
	case Market:
		p.Title = "Market Overview"
		p.Filters = b.filterBar(kind, opts.Selection)
		p.Sections = []Section{{Charts: slots(Charts(kind), nil)}}
	case Insights:
		p.Title = "Insights"
		p.Filters = b.filterBar(kind, opts.Selection)
		p.Sections = []Section{{
			Header: "Correlation Analysis",
			Charts: slots(Charts(kind), []string{
				"Feature Correlation Matrix",
				"Features Most Correlated with Sale Price",
			}),
		}}
		p.Content = b.content
	case Data:
		p.Title = "Housing Data Table"
		p.Table = b.dataTable(opts.TablePage)
	default:
		p.Kind = Trends
		p.Title = "Trends & Analysis"
		p.Filters = b.filterBar(Trends, opts.Selection)
		p.Summary = true
		p.Sections = []Section{{Charts: slots(Charts(Trends), nil)}}
	}
	return p
}

func (b *Builder) filterBar(group Kind, sel models.Selection) *FilterBar {
	return &FilterBar{
		Group: group,
		Zoning: Dropdown{
			ID:          Element(ZoningFilter(group)),
			Label:       models.ColMSZoning,
			Placeholder: "Select zoning",
			Options:     b.zonings,
			Selected:    sel.Zoning,
		},
		BldgType: Dropdown{
			ID:          Element(BldgTypeFilter(group)),
			Label:       models.ColBldgType,
			Placeholder: "Select building type",
			Options:     b.bldgTypes,
			Selected:    sel.BldgType,
		},
	}
}

// dataTable pages through the whole table. Filters never apply here.
func (b *Builder) dataTable(page int) *DataTable {
	total := b.table.Len()
	pages := (total + PageSize - 1) / PageSize
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	v := b.table.All()
	schema := v.Schema()
	start := (page - 1) * PageSize
	end := min(start+PageSize, total)

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		r := v.At(i)
		cells := make([]string, schema.Len())
		for c := range cells {
			cells[c] = r.Value(c).Format(schema.Column(c).Kind)
		}
		rows = append(rows, cells)
	}
	return &DataTable{
		Columns: schema.Names(),
		Rows:    rows,
		Page:    page,
		Pages:   pages,
		Total:   total,
	}
}

func slots(kinds []charts.Kind, headings []string) []ChartSlot {
	out := make([]ChartSlot, len(kinds))
	for i, k := range kinds {
		out[i] = ChartSlot{ID: string(k)}
		if i < len(headings) {
			out[i].Heading = headings[i]
		}
	}
	return out
}
