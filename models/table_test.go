package models

import (
	"math"
	"testing"
)

func smallTable() *Table {
	schema := NewSchema([]Column{
		{Name: ColMSZoning, Kind: Categorical},
		{Name: ColSalePrice, Kind: Numeric},
	})
	return NewTable(schema, []*Record{
		NewRecord([]Value{TextValue("RL"), NumberValue(200000)}),
		NewRecord([]Value{TextValue("RM"), MissingValue()}),
		NewRecord([]Value{MissingValue(), NumberValue(150000)}),
		NewRecord([]Value{TextValue("RL"), NumberValue(181500.5)}),
	})
}

func TestTableDistinctKeepsFirstAppearanceOrder(t *testing.T) {
	got := smallTable().Distinct(ColMSZoning)
	want := []string{"RL", "RM"}
	if len(got) != len(want) {
		t.Fatalf("Distinct: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Distinct[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
	if d := smallTable().Distinct("Nope"); d != nil {
		t.Errorf("Distinct of unknown column: got %v, want nil", d)
	}
}

func TestViewNumbersMarksMissingAsNaN(t *testing.T) {
	nums := smallTable().All().Numbers(ColSalePrice)
	if len(nums) != 4 {
		t.Fatalf("len: got %d, want 4", len(nums))
	}
	if !math.IsNaN(nums[1]) {
		t.Errorf("nums[1]: got %v, want NaN", nums[1])
	}
	if nums[3] != 181500.5 {
		t.Errorf("nums[3]: got %v, want 181500.5", nums[3])
	}
	for _, v := range smallTable().All().Numbers(ColMSZoning) {
		if !math.IsNaN(v) {
			t.Errorf("categorical column should read as NaN, got %v", v)
		}
	}
}

func TestViewTextsFormatsNumbers(t *testing.T) {
	texts := smallTable().All().Texts(ColSalePrice)
	want := []string{"200000", "", "150000", "181500.5"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("Texts[%d]: got %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestAllViewCannotGrowIntoTable(t *testing.T) {
	tbl := smallTable()
	v := tbl.All()
	if v.Len() != tbl.Len() {
		t.Fatalf("All: got %d records, want %d", v.Len(), tbl.Len())
	}
	if cap(v.records) != len(v.records) {
		t.Errorf("All view must be capacity-clipped, cap %d len %d", cap(v.records), len(v.records))
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
	}{
		{"dark", ThemeDark},
		{"light", ThemeLight},
		{"", ThemeDark},
		{"solarized", ThemeLight},
	}
	for _, tt := range tests {
		fallback := ThemeDark
		if tt.in == "solarized" {
			fallback = ThemeLight
		}
		if got := ParseTheme(tt.in, fallback); got != tt.want {
			t.Errorf("ParseTheme(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
	if ThemeDark.Toggle() != ThemeLight || ThemeLight.Toggle() != ThemeDark {
		t.Error("Toggle should swap dark and light")
	}
}
