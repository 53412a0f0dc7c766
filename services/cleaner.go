package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

// missingTokens are the cell spellings read as "no value".
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
}

// Cleaner turns raw string rows from a dataset source into a typed Table.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean validates the header against the housing schema, drops the
// identifier column and parses every cell. Any malformed cell fails the
// whole load.
func (c *Cleaner) Clean(header []string, rows [][]string) (*models.Table, error) {
	header = normaliseHeader(header)

	required := make(map[string]models.Kind, len(models.HousingColumns))
	for _, col := range models.HousingColumns {
		required[col.Name] = col.Kind
	}

	present := make(map[string]struct{}, len(header))
	var keep []int
	for i, name := range header {
		if name == models.ColID || name == "" {
			continue
		}
		if _, dup := present[name]; dup {
			return nil, fmt.Errorf("cleaner: duplicate column %q", name)
		}
		present[name] = struct{}{}
		keep = append(keep, i)
	}
	for _, col := range models.HousingColumns {
		if _, ok := present[col.Name]; !ok {
			return nil, fmt.Errorf("cleaner: missing required column %q", col.Name)
		}
	}

	columns := make([]models.Column, len(keep))
	for k, i := range keep {
		name := header[i]
		kind, ok := required[name]
		if !ok {
			kind = inferKind(rows, i)
		}
		columns[k] = models.Column{Name: name, Kind: kind}
	}
	schema := models.NewSchema(columns)

	records := make([]*models.Record, 0, len(rows))
	dropped := 0
	for n, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("cleaner: row %d has %d fields, want %d", n+1, len(row), len(header))
		}
		if blankRow(row) {
			dropped++
			continue
		}

		values := make([]models.Value, len(keep))
		for k, i := range keep {
			v, err := parseCell(row[i], columns[k].Kind)
			if err != nil {
				return nil, fmt.Errorf("cleaner: row %d column %q: %w", n+1, columns[k].Name, err)
			}
			values[k] = v
		}
		records = append(records, models.NewRecord(values))
	}

	if dropped > 0 {
		c.logger.Debug("[cleaner] Skipped %d blank rows", dropped)
	}
	c.logger.Info("[cleaner] Parsed %d records across %d columns", len(records), len(columns))
	return models.NewTable(schema, records), nil
}

func parseCell(raw string, kind models.Kind) (models.Value, error) {
	text := normaliseText(raw)
	if isMissing(text) {
		return models.MissingValue(), nil
	}
	if kind == models.Categorical {
		return models.TextValue(text), nil
	}
	f, ok := parseNumber(text)
	if !ok {
		return models.Value{}, fmt.Errorf("%q is not a number", text)
	}
	return models.NumberValue(f), nil
}

// parseNumber accepts plain and thousands-separated decimals.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// inferKind treats a column as numeric when every present cell parses.
func inferKind(rows [][]string, col int) models.Kind {
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		text := normaliseText(row[col])
		if isMissing(text) {
			continue
		}
		if _, ok := parseNumber(text); !ok {
			return models.Categorical
		}
	}
	return models.Numeric
}

func isMissing(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normaliseHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = normaliseText(h)
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
