package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"housing-dashboard/models"
)

// rows flattens a view to its (zoning, bldgtype, price) triples.
func rows(v models.View) [][3]string {
	z := v.Texts(models.ColMSZoning)
	b := v.Texts(models.ColBldgType)
	p := v.Texts(models.ColSalePrice)
	out := make([][3]string, v.Len())
	for i := range out {
		out[i] = [3]string{z[i], b[i], p[i]}
	}
	return out
}

func TestFilterMatchesBothPredicates(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		name string
		sel  models.Selection
		want [][3]string
	}{
		{
			name: "zoning and building type",
			sel:  models.Selection{Zoning: "A", BldgType: "X"},
			want: [][3]string{{"A", "X", "208500"}, {"A", "X", "250000"}},
		},
		{
			name: "zoning only",
			sel:  models.Selection{Zoning: "B"},
			want: [][3]string{{"B", "X", "223500"}, {"B", "Y", "140000"}, {"B", "X", ""}},
		},
		{
			name: "building type only",
			sel:  models.Selection{BldgType: "Y"},
			want: [][3]string{{"A", "Y", "181500"}, {"B", "Y", "140000"}},
		},
		{
			name: "unknown zoning",
			sel:  models.Selection{Zoning: "Z"},
			want: [][3]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rows(FilterTable(tbl, tt.sel))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%+v) mismatch (-want +got):\n%s", tt.sel, diff)
			}
		})
	}
}

func TestFilterWithoutSelectionKeepsEverything(t *testing.T) {
	tbl := sampleTable(t)
	if got := FilterTable(tbl, models.Selection{}).Len(); got != tbl.Len() {
		t.Errorf("empty selection: got %d records, want %d", got, tbl.Len())
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	tbl := sampleTable(t)
	for _, z := range []string{"", "A", "B", "Z"} {
		for _, b := range []string{"", "X", "Y"} {
			sel := models.Selection{Zoning: z, BldgType: b}
			once := FilterTable(tbl, sel)
			twice := Filter(once, sel)
			if diff := cmp.Diff(rows(once), rows(twice)); diff != "" {
				t.Errorf("Filter not idempotent for %+v (-once +twice):\n%s", sel, diff)
			}
		}
	}
}

func TestFilterIsSubsetAndLeavesTableUntouched(t *testing.T) {
	tbl := sampleTable(t)
	before := rows(tbl.All())

	v := FilterTable(tbl, models.Selection{Zoning: "A"})
	inTable := make(map[*models.Record]bool)
	all := tbl.All()
	for i := 0; i < all.Len(); i++ {
		inTable[all.At(i)] = true
	}
	for i := 0; i < v.Len(); i++ {
		if !inTable[v.At(i)] {
			t.Errorf("record %d of view is not a table record", i)
		}
	}

	if diff := cmp.Diff(before, rows(tbl.All())); diff != "" {
		t.Errorf("table changed after filtering (-before +after):\n%s", diff)
	}
}
