package algo

import "math"

// Sum adds up xs.
func Sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// Scaled returns a copy of xs multiplied by k.
func Scaled(xs []float64, k float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * k
	}
	return out
}

// Shifted returns a copy of xs with d added to every element.
func Shifted(xs []float64, d float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x + d
	}
	return out
}

// CopyMatrix returns a deep copy of m.
func CopyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Transpose returns the transpose of a rectangular matrix.
func Transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return [][]float64{}
	}
	cols := len(m[0])
	out := make([][]float64, cols)
	for c := range cols {
		out[c] = make([]float64, len(m))
		for r := range m {
			out[c][r] = m[r][c]
		}
	}
	return out
}

// ColumnSums adds rows first..last (inclusive) of m column by column.
func ColumnSums(m [][]float64, first, last int) []float64 {
	if len(m) == 0 {
		return []float64{}
	}
	out := make([]float64, len(m[0]))
	for r := first; r <= last; r++ {
		for c, v := range m[r] {
			out[c] += v
		}
	}
	return out
}

// RowSums adds columns first..last (inclusive) of m row by row.
func RowSums(m [][]float64, first, last int) []float64 {
	out := make([]float64, len(m))
	for r, row := range m {
		for c := first; c <= last; c++ {
			out[r] += row[c]
		}
	}
	return out
}

// ColumnQuadrature combines rows first..last (inclusive) of m in quadrature, column by column.
func ColumnQuadrature(m [][]float64, first, last int) []float64 {
	if len(m) == 0 {
		return []float64{}
	}
	out := make([]float64, len(m[0]))
	for r := first; r <= last; r++ {
		for c, v := range m[r] {
			out[c] += v * v
		}
	}
	for c := range out {
		out[c] = math.Sqrt(out[c])
	}
	return out
}

// RowQuadrature combines columns first..last (inclusive) of m in quadrature, row by row.
func RowQuadrature(m [][]float64, first, last int) []float64 {
	out := make([]float64, len(m))
	for r, row := range m {
		var sum2 float64
		for c := first; c <= last; c++ {
			sum2 += row[c] * row[c]
		}
		out[r] = math.Sqrt(sum2)
	}
	return out
}

// MaskZeros returns a copy of m where exact zeros are replaced by NaN.
func MaskZeros(m [][]float64) [][]float64 {
	out := CopyMatrix(m)
	for _, row := range out {
		for c, v := range row {
			if v == 0 {
				row[c] = math.NaN()
			}
		}
	}
	return out
}
