package binstore

import (
	"github.com/huangsam/binbridge/core/algo"
	"github.com/huangsam/binbridge/schema"
)

// Hist1D is a one-dimensional histogram held in memory.
//
// Rebin truncates: with N bins and factor n the result keeps N/n bins and the
// content of the trailing N mod n bins moves to Overflow.
type Hist1D struct {
	id       string
	edges    []float64
	values   []float64
	errLow   []float64
	errHigh  []float64
	overflow float64
}

// Hist2D is a two-dimensional histogram held in memory, with cells indexed
// [y][x]. Rebinning follows the same truncation policy as Hist1D.
type Hist2D struct {
	id       string
	xEdges   []float64
	yEdges   []float64
	cells    [][]float64
	errs     [][]float64
	overflow float64
}

var (
	_ schema.Hist1D = &Hist1D{} // Compile-time check
	_ schema.Hist2D = &Hist2D{} // Compile-time check
)

// ID returns the identifier given to the histogram when it was cloned.
func (h *Hist1D) ID() string { return h.id }

// Overflow returns the content dropped by truncating rebins.
func (h *Hist1D) Overflow() float64 { return h.overflow }

// Len returns the number of bins.
func (h *Hist1D) Len() int { return len(h.values) }

// Bin returns bin i.
func (h *Hist1D) Bin(i int) schema.Bin1D {
	lo, hi := h.edges[i], h.edges[i+1]
	return schema.Bin1D{
		Center:    0.5 * (lo + hi),
		Value:     h.values[i],
		ErrLow:    h.errLow[i],
		ErrHigh:   h.errHigh[i],
		HalfWidth: 0.5 * (hi - lo),
	}
}

// Clone returns a deep copy identified by id.
func (h *Hist1D) Clone(id string) schema.Hist1D {
	return &Hist1D{
		id:       id,
		edges:    append([]float64(nil), h.edges...),
		values:   append([]float64(nil), h.values...),
		errLow:   append([]float64(nil), h.errLow...),
		errHigh:  append([]float64(nil), h.errHigh...),
		overflow: h.overflow,
	}
}

// Rebin merges factor adjacent bins. Errors combine in quadrature.
func (h *Hist1D) Rebin(factor int) error {
	if err := algo.CheckFactor(h.Len(), factor); err != nil {
		return err
	}
	if factor == 1 {
		return nil
	}
	h.overflow += algo.Remainder(h.values, factor)
	h.edges = algo.MergeEdges(h.edges, factor)
	h.values = algo.MergeSums(h.values, factor)
	h.errLow = algo.MergeQuadrature(h.errLow, factor)
	h.errHigh = algo.MergeQuadrature(h.errHigh, factor)
	return nil
}

// ID returns the identifier given to the histogram when it was cloned.
func (h *Hist2D) ID() string { return h.id }

// Overflow returns the content dropped by truncating rebins.
func (h *Hist2D) Overflow() float64 { return h.overflow }

// XEdges returns the x bin edges.
func (h *Hist2D) XEdges() []float64 { return h.xEdges }

// YEdges returns the y bin edges.
func (h *Hist2D) YEdges() []float64 { return h.yEdges }

// Content returns the value of cell (ix, iy).
func (h *Hist2D) Content(ix, iy int) float64 { return h.cells[iy][ix] }

// Error returns the uncertainty of cell (ix, iy).
func (h *Hist2D) Error(ix, iy int) float64 { return h.errs[iy][ix] }

// Clone returns a deep copy identified by id.
func (h *Hist2D) Clone(id string) schema.Hist2D {
	return &Hist2D{
		id:       id,
		xEdges:   append([]float64(nil), h.xEdges...),
		yEdges:   append([]float64(nil), h.yEdges...),
		cells:    algo.CopyMatrix(h.cells),
		errs:     algo.CopyMatrix(h.errs),
		overflow: h.overflow,
	}
}

func (h *Hist2D) xBins() int {
	if len(h.xEdges) < 2 {
		return 0
	}
	return len(h.xEdges) - 1
}

// RebinX merges factor adjacent x bins in every row.
func (h *Hist2D) RebinX(factor int) error {
	if err := algo.CheckFactor(h.xBins(), factor); err != nil {
		return err
	}
	if factor == 1 {
		return nil
	}
	for iy := range h.cells {
		h.overflow += algo.Remainder(h.cells[iy], factor)
		h.cells[iy] = algo.MergeSums(h.cells[iy], factor)
		h.errs[iy] = algo.MergeQuadrature(h.errs[iy], factor)
	}
	h.xEdges = algo.MergeEdges(h.xEdges, factor)
	return nil
}

// RebinY merges factor adjacent y bins in every column.
func (h *Hist2D) RebinY(factor int) error {
	if err := algo.CheckFactor(len(h.cells), factor); err != nil {
		return err
	}
	if factor == 1 {
		return nil
	}
	n := algo.MergedBins(len(h.cells), factor)
	cells := make([][]float64, n)
	errs := make([][]float64, n)
	for i := range n {
		first, last := i*factor, (i+1)*factor-1
		cells[i] = algo.ColumnSums(h.cells, first, last)
		errs[i] = algo.ColumnQuadrature(h.errs, first, last)
	}
	for _, row := range h.cells[n*factor:] {
		h.overflow += algo.Sum(row)
	}
	h.cells, h.errs = cells, errs
	h.yEdges = algo.MergeEdges(h.yEdges, factor)
	return nil
}
