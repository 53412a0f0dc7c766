// Package charts turns a filtered view into plotly figure descriptions.
//
// Every builder is a pure function of (view, theme): it reads nothing else,
// keeps nothing between calls and returns a valid figure for an empty view.
// The theme only ever touches styling fields, never data.
package charts

import (
	"fmt"

	"housing-dashboard/models"
)

// Kind names one chart in the catalogue.
type Kind string

const (
	KindSalePriceDistribution Kind = "saleprice-distribution"
	KindYearBuiltSalePrice    Kind = "yearbuilt-saleprice"
	KindConditionSalePrice    Kind = "condition-saleprice"
	KindAvgBasementByYear     Kind = "avg-basement-by-year"
	KindLotAreaSalePrice      Kind = "lotarea-saleprice"
	KindSalePriceHistogram    Kind = "saleprice-histogram"
	KindAvgPriceByBldgType    Kind = "avgprice-by-bldgtype"
	KindBldgTypeShare         Kind = "bldgtype-share"
	KindCorrelationHeatmap    Kind = "correlation-heatmap"
	KindSalePriceCorrelation  Kind = "saleprice-correlation"
)

// Builder maps a view and theme to one chart.
type Builder func(v models.View, theme models.Theme) *models.Figure

var catalogue = map[Kind]Builder{
	KindSalePriceDistribution: salePriceDistribution,
	KindYearBuiltSalePrice:    yearBuiltSalePrice,
	KindConditionSalePrice:    conditionSalePrice,
	KindAvgBasementByYear:     avgBasementByYear,
	KindLotAreaSalePrice:      lotAreaSalePrice,
	KindSalePriceHistogram:    salePriceHistogram,
	KindAvgPriceByBldgType:    avgPriceByBldgType,
	KindBldgTypeShare:         bldgTypeShare,
	KindCorrelationHeatmap:    correlationHeatmap,
	KindSalePriceCorrelation:  salePriceCorrelation,
}

// Kinds lists the catalogue in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindSalePriceDistribution,
		KindYearBuiltSalePrice,
		KindConditionSalePrice,
		KindAvgBasementByYear,
		KindLotAreaSalePrice,
		KindSalePriceHistogram,
		KindAvgPriceByBldgType,
		KindBldgTypeShare,
		KindCorrelationHeatmap,
		KindSalePriceCorrelation,
	}
}

// Build runs the builder registered for kind.
func Build(kind Kind, v models.View, theme models.Theme) (*models.Figure, error) {
	b, ok := catalogue[kind]
	if !ok {
		return nil, fmt.Errorf("charts: unknown chart %q", kind)
	}
	return b(v, theme), nil
}
