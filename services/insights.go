package services

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"housing-dashboard/models"
	"housing-dashboard/stats"
	"housing-dashboard/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises a filtered view. Price statistics only consider
// records with a sale price.
func (s *InsightService) Generate(v models.View) *models.SummaryReport {
	report := &models.SummaryReport{
		ByZoning:   make(map[string]int),
		ByBldgType: make(map[string]int),
	}

	if v.Len() == 0 {
		return report
	}
	report.TotalRecords = v.Len()

	prices := v.Numbers(models.ColSalePrice)
	report.PricedRecords = stats.Count(prices)
	if report.PricedRecords > 0 {
		report.AveragePrice = round2(stats.Mean(prices))
		report.MedianPrice = round2(stats.Median(prices))
		min, max := stats.MinMax(prices)
		report.MinPrice = round2(min)
		report.MaxPrice = round2(max)
	}

	for _, z := range v.Texts(models.ColMSZoning) {
		if z != "" {
			report.ByZoning[z]++
		}
	}
	for _, b := range v.Texts(models.ColBldgType) {
		if b != "" {
			report.ByBldgType[b]++
		}
	}

	s.logger.Debug("[insights] Summarised %d records (%d priced)", report.TotalRecords, report.PricedRecords)
	return report
}

// Count is one category tally.
type Count struct {
	Label string
	N     int
}

// SortedCounts orders a tally by count descending, then label.
func SortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Label: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func (s *InsightService) Print(w io.Writer, r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  HOUSING PRICE SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Records          : \033[1m%d\033[0m\n", r.TotalRecords)
	fmt.Fprintf(w, "  With sale price  : \033[1m%d\033[0m\n", r.PricedRecords)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Sale Price\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.PricedRecords > 0 {
		fmt.Fprintf(w, "  Average : \033[1;32m$%s\033[0m\n", Money(r.AveragePrice))
		fmt.Fprintf(w, "  Median  : \033[1;32m$%s\033[0m\n", Money(r.MedianPrice))
		fmt.Fprintf(w, "  Minimum : \033[1;32m$%s\033[0m\n", Money(r.MinPrice))
		fmt.Fprintf(w, "  Maximum : \033[1;32m$%s\033[0m\n", Money(r.MaxPrice))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	printCounts(w, "Records by Zoning", r.ByZoning, thin)
	printCounts(w, "Records by Building Type", r.ByBldgType, thin)

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func printCounts(w io.Writer, title string, m map[string]int, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	counts := SortedCounts(m)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  No data\n\n")
		return
	}
	max := counts[0].N
	for _, c := range counts {
		width := int(math.Ceil(float64(c.N) / float64(max) * 30))
		fmt.Fprintf(w, "  %-10s %s (%d)\n", truncate(c.Label, 10), strings.Repeat("█", width), c.N)
	}
	fmt.Fprintln(w)
}

// moneyPrinter groups digits the English way.
var moneyPrinter = message.NewPrinter(language.English)

// Money formats a price with thousands separators and no cents.
func Money(f float64) string {
	return moneyPrinter.Sprintf("%.0f", f)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
