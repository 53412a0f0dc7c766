package services

import "housing-dashboard/models"

// Filter keeps the records of v that match every present field of sel.
// Unknown values simply match nothing.
func Filter(v models.View, sel models.Selection) models.View {
	schema := v.Schema()
	zoningIdx, zoningOK := schema.Index(models.ColMSZoning)
	bldgIdx, bldgOK := schema.Index(models.ColBldgType)

	out := make([]*models.Record, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		if sel.Zoning != "" && !matches(r, zoningIdx, zoningOK, sel.Zoning) {
			continue
		}
		if sel.BldgType != "" && !matches(r, bldgIdx, bldgOK, sel.BldgType) {
			continue
		}
		out = append(out, r)
	}
	return models.NewView(schema, out)
}

// FilterTable is Filter over the whole table.
func FilterTable(t *models.Table, sel models.Selection) models.View {
	return Filter(t.All(), sel)
}

func matches(r *models.Record, idx int, ok bool, want string) bool {
	if !ok {
		return false
	}
	v := r.Value(idx)
	return !v.Missing && v.Text == want
}
