package models

// SummaryReport holds headline statistics over a filtered view.
type SummaryReport struct {
	TotalRecords  int
	PricedRecords int
	AveragePrice  float64
	MedianPrice   float64
	MinPrice      float64
	MaxPrice      float64
	ByZoning      map[string]int
	ByBldgType    map[string]int
}
