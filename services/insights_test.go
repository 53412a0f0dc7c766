package services

import (
	"bytes"
	"strings"
	"testing"

	"housing-dashboard/models"
)

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleTable(t).All())
	if r.TotalRecords != 6 {
		t.Errorf("TotalRecords: got %d, want 6", r.TotalRecords)
	}
	if r.PricedRecords != 5 {
		t.Errorf("PricedRecords: got %d, want 5", r.PricedRecords)
	}
	if r.ByZoning["A"] != 3 || r.ByZoning["B"] != 3 {
		t.Errorf("ByZoning: got %v, want A=3 B=3", r.ByZoning)
	}
	if r.ByBldgType["X"] != 4 || r.ByBldgType["Y"] != 2 {
		t.Errorf("ByBldgType: got %v, want X=4 Y=2", r.ByBldgType)
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleTable(t).All())
	if r.AveragePrice != 200700 {
		t.Errorf("AveragePrice: got %.2f, want 200700", r.AveragePrice)
	}
	if r.MedianPrice != 208500 {
		t.Errorf("MedianPrice: got %.2f, want 208500", r.MedianPrice)
	}
	if r.MinPrice != 140000 {
		t.Errorf("MinPrice: got %.2f, want 140000", r.MinPrice)
	}
	if r.MaxPrice != 250000 {
		t.Errorf("MaxPrice: got %.2f, want 250000", r.MaxPrice)
	}
}

func TestInsightFilteredView(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(FilterTable(sampleTable(t), models.Selection{Zoning: "A", BldgType: "X"}))
	if r.TotalRecords != 2 {
		t.Errorf("TotalRecords: got %d, want 2", r.TotalRecords)
	}
	if r.AveragePrice != 229250 {
		t.Errorf("AveragePrice: got %.2f, want 229250", r.AveragePrice)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(FilterTable(sampleTable(t), models.Selection{Zoning: "Z"}))
	if r.TotalRecords != 0 || r.PricedRecords != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
	if r.ByZoning == nil || r.ByBldgType == nil {
		t.Error("count maps should be initialised even when empty")
	}
}

func TestSortedCounts(t *testing.T) {
	got := SortedCounts(map[string]int{"RM": 2, "RL": 5, "FV": 2})
	want := []Count{{"RL", 5}, {"FV", 2}, {"RM", 2}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedCounts[%d]: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{208500, "208,500"},
		{1234567.6, "1,234,568"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintReport(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleTable(t).All()))
	out := buf.String()
	for _, want := range []string{"HOUSING PRICE SUMMARY", "200,700", "Records by Zoning"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print output missing %q", want)
		}
	}
}
