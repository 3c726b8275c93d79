// Package stats holds the numeric helpers shared by the pattern, anomaly and
// performance components. All functions are pure and leave their input
// unmodified.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of x, or NaN for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// PopStdDev returns the population (biased) standard deviation of x, or NaN
// for an empty slice.
func PopStdDev(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	_, variance := stat.PopMeanVariance(x, nil)
	return math.Sqrt(variance)
}

// Median returns the middle value of x, averaging the two middle values for
// even lengths. NaN for an empty slice.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := sortedCopy(x)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Percentile returns the element at ceil(p/100 * n) - 1 of the ascending
// sort of x, clamped to the first element. NaN for an empty slice.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := sortedCopy(x)
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	idx = max(0, min(idx, len(sorted)-1))
	return sorted[idx]
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

// Ints converts counts to float64 for the helpers above.
func Ints(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}

func sortedCopy(x []float64) []float64 {
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	return sorted
}
