package models

import (
	"math"
	"strconv"
)

// Kind is the storage type of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Housing column names used by the dashboard.
const (
	ColMSSubClass   = "MSSubClass"
	ColMSZoning     = "MSZoning"
	ColLotArea      = "LotArea"
	ColLotConfig    = "LotConfig"
	ColBldgType     = "BldgType"
	ColOverallCond  = "OverallCond"
	ColYearBuilt    = "YearBuilt"
	ColYearRemodAdd = "YearRemodAdd"
	ColExterior1st  = "Exterior1st"
	ColBsmtFinSF2   = "BsmtFinSF2"
	ColTotalBsmtSF  = "TotalBsmtSF"
	ColSalePrice    = "SalePrice"

	// ColID is dropped on load.
	ColID = "Id"
)

// HousingColumns is the fixed schema every dataset must provide, in
// canonical order.
var HousingColumns = []Column{
	{Name: ColMSSubClass, Kind: Numeric},
	{Name: ColMSZoning, Kind: Categorical},
	{Name: ColLotArea, Kind: Numeric},
	{Name: ColLotConfig, Kind: Categorical},
	{Name: ColBldgType, Kind: Categorical},
	{Name: ColOverallCond, Kind: Numeric},
	{Name: ColYearBuilt, Kind: Numeric},
	{Name: ColYearRemodAdd, Kind: Numeric},
	{Name: ColExterior1st, Kind: Categorical},
	{Name: ColBsmtFinSF2, Kind: Numeric},
	{Name: ColTotalBsmtSF, Kind: Numeric},
	{Name: ColSalePrice, Kind: Numeric},
}

// Column describes one attribute of a Record.
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered column set shared by every Record of a Table.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a Schema. Later duplicates of a column name shadow
// nothing; the first occurrence wins for lookups.
func NewSchema(columns []Column) *Schema {
	s := &Schema{
		columns: append([]Column(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := s.index[c.Name]; !ok {
			s.index[c.Name] = i
		}
	}
	return s
}

// Columns returns a copy of the column list.
func (s *Schema) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Column returns the i-th column.
func (s *Schema) Column(i int) Column { return s.columns[i] }

// Index returns the position of the named column.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns the column names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the names of numeric columns in order.
func (s *Schema) NumericNames() []string {
	var names []string
	for _, c := range s.columns {
		if c.Kind == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// Value is a single cell. Exactly one of Num or Text is meaningful,
// depending on the column kind, unless Missing is set.
type Value struct {
	Num     float64
	Text    string
	Missing bool
}

// NumberValue returns a numeric cell.
func NumberValue(f float64) Value { return Value{Num: f} }

// TextValue returns a categorical cell.
func TextValue(s string) Value { return Value{Text: s} }

// MissingValue returns an empty cell.
func MissingValue() Value { return Value{Missing: true} }

// Format renders the cell for display and export.
func (v Value) Format(kind Kind) string {
	if v.Missing {
		return ""
	}
	if kind == Numeric {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Text
}

// Record is one housing sale observation. It is immutable once built.
type Record struct {
	values []Value
}

// NewRecord copies values into a new Record.
func NewRecord(values []Value) *Record {
	return &Record{values: append([]Value(nil), values...)}
}

// Value returns the i-th cell, or a missing cell when i is out of range.
func (r *Record) Value(i int) Value {
	if i < 0 || i >= len(r.values) {
		return MissingValue()
	}
	return r.values[i]
}

// Len returns the number of cells.
func (r *Record) Len() int { return len(r.values) }

// Table is the immutable, fully loaded dataset.
type Table struct {
	schema  *Schema
	records []*Record
}

// NewTable builds a Table that owns records.
func NewTable(schema *Schema, records []*Record) *Table {
	return &Table{schema: schema, records: records}
}

// Schema returns the table schema.
func (t *Table) Schema() *Schema { return t.schema }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// All returns a view over every record.
func (t *Table) All() View {
	return View{schema: t.schema, records: t.records[:len(t.records):len(t.records)]}
}

// Distinct returns the non-missing values of a categorical column in order
// of first appearance.
func (t *Table) Distinct(column string) []string {
	i, ok := t.schema.Index(column)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.records {
		v := r.Value(i)
		if v.Missing {
			continue
		}
		key := v.Format(t.schema.Column(i).Kind)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// View is a read-only subset of a Table. It never owns or mutates records.
type View struct {
	schema  *Schema
	records []*Record
}

// NewView builds a View over records sharing schema.
func NewView(schema *Schema, records []*Record) View {
	return View{schema: schema, records: records}
}

// Schema returns the view schema.
func (v View) Schema() *Schema { return v.schema }

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.records) }

// At returns the i-th record.
func (v View) At(i int) *Record { return v.records[i] }

// Numbers returns the named column as floats aligned with the records.
// Missing cells, and every cell of an unknown or categorical column, are NaN.
func (v View) Numbers(column string) []float64 {
	out := make([]float64, len(v.records))
	i, ok := v.schema.Index(column)
	if !ok || v.schema.Column(i).Kind != Numeric {
		for k := range out {
			out[k] = math.NaN()
		}
		return out
	}
	for k, r := range v.records {
		val := r.Value(i)
		if val.Missing {
			out[k] = math.NaN()
			continue
		}
		out[k] = val.Num
	}
	return out
}

// Texts returns the named column formatted as strings aligned with the
// records. Missing cells are empty.
func (v View) Texts(column string) []string {
	out := make([]string, len(v.records))
	i, ok := v.schema.Index(column)
	if !ok {
		return out
	}
	kind := v.schema.Column(i).Kind
	for k, r := range v.records {
		out[k] = r.Value(i).Format(kind)
	}
	return out
}
