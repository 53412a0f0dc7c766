// Package stats holds the numeric helpers behind the chart builders. All
// functions skip NaN entries, which stand for missing cells.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Present returns the non-NaN entries of x.
func Present(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Count returns the number of non-NaN entries.
func Count(x []float64) int {
	n := 0
	for _, v := range x {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Mean computes the average of the non-NaN entries. It returns NaN when
// there are none.
func Mean(x []float64) float64 {
	p := Present(x)
	if len(p) == 0 {
		return math.NaN()
	}
	return stat.Mean(p, nil)
}

// MinMax returns the smallest and largest non-NaN entries, or NaN, NaN.
func MinMax(x []float64) (float64, float64) {
	p := Present(x)
	if len(p) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(p), floats.Max(p)
}

// Median returns the median of the non-NaN entries (allocates a copy). An
// even count averages the two middle values.
func Median(x []float64) float64 {
	cp := Present(x)
	n := len(cp)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(cp)
	lower := stat.Quantile(0.5, stat.Empirical, cp, nil)
	if n&1 == 0 {
		return (lower + cp[n>>1]) * 0.5
	}
	return lower
}

// Pearson computes the correlation of x and y over the positions where both
// are present. ok is false when fewer than two pairs remain or either side
// has zero variance.
func Pearson(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) {
		return 0, false
	}
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0, false
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return 0, false
	}
	r = stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	// rounding can push |r| a hair past 1
	return math.Max(-1, math.Min(1, r)), true
}

// CorrelationMatrix returns the symmetric matrix of pairwise Pearson
// correlations between columns. Undefined entries are NaN and the diagonal
// is 1.
func CorrelationMatrix(columns [][]float64) [][]float64 {
	n := len(columns)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			r, ok := Pearson(columns[i], columns[j])
			if !ok {
				r = math.NaN()
			}
			m[i][j], m[j][i] = r, r
		}
	}
	return m
}
