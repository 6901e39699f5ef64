// Package algo has the numeric primitives shared by binned datasets.
package algo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFactor is returned when a merge factor is not usable for a binning.
var ErrInvalidFactor = errors.New("invalid merge factor")

// CheckFactor validates a merge factor against a bin count.
// A factor of 1 is always valid, even for an empty binning.
func CheckFactor(bins, factor int) error {
	if factor < 1 {
		return fmt.Errorf("%w: %d must be a positive integer", ErrInvalidFactor, factor)
	}
	if factor > 1 && factor > bins {
		return fmt.Errorf("%w: %d exceeds the %d available bins", ErrInvalidFactor, factor, bins)
	}
	return nil
}

// MergedBins returns the number of bins left after merging by factor.
// Trailing bins that do not fill a whole group are dropped.
func MergedBins(bins, factor int) int {
	if factor < 1 {
		return bins
	}
	return bins / factor
}

// MergeSums adds up groups of factor adjacent values.
func MergeSums(values []float64, factor int) []float64 {
	n := MergedBins(len(values), factor)
	out := make([]float64, n)
	for i := range n {
		for _, v := range values[i*factor : (i+1)*factor] {
			out[i] += v
		}
	}
	return out
}

// MergeQuadrature combines groups of factor adjacent uncertainties in quadrature.
func MergeQuadrature(errs []float64, factor int) []float64 {
	n := MergedBins(len(errs), factor)
	out := make([]float64, n)
	for i := range n {
		var sum2 float64
		for _, e := range errs[i*factor : (i+1)*factor] {
			sum2 += e * e
		}
		out[i] = math.Sqrt(sum2)
	}
	return out
}

// MergeEdges keeps every factor-th edge of a binning.
func MergeEdges(edges []float64, factor int) []float64 {
	if len(edges) == 0 {
		return []float64{}
	}
	n := MergedBins(len(edges)-1, factor)
	out := make([]float64, n+1)
	for i := range n + 1 {
		out[i] = edges[i*factor]
	}
	return out
}

// Remainder returns the sum of the trailing values a merge drops.
func Remainder(values []float64, factor int) float64 {
	if factor < 1 {
		return 0
	}
	n := MergedBins(len(values), factor)
	var sum float64
	for _, v := range values[n*factor:] {
		sum += v
	}
	return sum
}

// Centers returns the midpoint of every bin of a binning.
func Centers(edges []float64) []float64 {
	if len(edges) < 2 {
		return []float64{}
	}
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = 0.5 * (edges[i] + edges[i+1])
	}
	return out
}

// HalfWidths returns half the width of every bin of a binning.
func HalfWidths(edges []float64) []float64 {
	if len(edges) < 2 {
		return []float64{}
	}
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = 0.5 * (edges[i+1] - edges[i])
	}
	return out
}

// StrictlyIncreasing reports whether xs is sorted with no repeated values.
func StrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}
