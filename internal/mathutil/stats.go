// Package mathutil collects small numeric helpers shared by the engine
// components: RMS and percentile statistics, and the sinc/window kernels
// used by band-limited interpolation.
package mathutil

import (
	"math"
	"sort"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/stat"
)

// RMS returns the root-mean-square of s, or 0 for an empty slice.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sumSquares := f64.DotProductUnsafe(s, s)
	return math.Sqrt(sumSquares / float64(len(s)))
}

// Mean returns the arithmetic mean of s, or 0 for an empty slice.
func Mean(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return f64.Sum(s) / float64(len(s))
}

// MeanOfLowest fraction of the sorted values in s, taking at least one
// value. s is not mutated. Used by the time-domain noise floor
// (fraction=0.2 over segment RMS).
func MeanOfLowest(s []float64, fraction float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)

	n := int(float64(len(sorted)) * fraction)
	if n < 1 {
		n = 1
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return Mean(sorted[:n])
}

// Percentile95 returns the 95th percentile of values by linear
// interpolation (gonum's stat.LinInterp cumulant kind), matching the
// multi-band transient detector's segment threshold computation. values is
// sorted in place.
func Percentile95(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	return stat.Quantile(0.95, stat.LinInterp, values, nil)
}

// Median returns the median of s (the mean of the two central values for
// an even-length slice). s is not mutated.
func Median(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
