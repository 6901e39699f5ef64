package core

import (
	"fmt"

	"github.com/huangsam/binbridge/core/algo"
	"github.com/huangsam/binbridge/schema"
)

// Grid is a two-dimensional binned dataset extracted from a store.
// Matrix and ErrMatrix are indexed [y bin][x bin].
type Grid struct {
	Name      string
	XEdges    []float64
	YEdges    []float64
	Matrix    [][]float64
	ErrMatrix [][]float64

	id  string
	src schema.Hist2D
}

// HeatmapOptions controls how a Grid is shaped into a heatmap.
type HeatmapOptions struct {
	KillZeros bool
	Transpose bool
	XScale    float64
	YScale    float64
}

// DefaultHeatmapOptions masks zero cells and leaves the axes as they are.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{KillZeros: true, XScale: 1, YScale: 1}
}

// NewGrid extracts a Grid from a private clone of src identified by id.
// Only WithRebinXY applies to a Grid.
func NewGrid(src schema.Hist2D, id string, opts ...Option) (*Grid, error) {
	o := newOptions(opts)
	clone := src.Clone(id)
	if err := rebinGrid(clone, o.rebinX, o.rebinY); err != nil {
		return nil, err
	}
	g := extractGrid(clone)
	g.id = id
	g.src = clone
	return g, nil
}

func rebinGrid(h schema.Hist2D, nx, ny int) error {
	if err := algo.CheckFactor(bins(h.XEdges()), nx); err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if err := algo.CheckFactor(bins(h.YEdges()), ny); err != nil {
		return fmt.Errorf("y axis: %w", err)
	}
	if nx > 1 {
		if err := h.RebinX(nx); err != nil {
			return err
		}
	}
	if ny > 1 {
		if err := h.RebinY(ny); err != nil {
			return err
		}
	}
	return nil
}

func extractGrid(h schema.Hist2D) *Grid {
	g := &Grid{
		XEdges: append([]float64(nil), h.XEdges()...),
		YEdges: append([]float64(nil), h.YEdges()...),
	}
	nx, ny := bins(g.XEdges), bins(g.YEdges)
	g.Matrix = make([][]float64, ny)
	g.ErrMatrix = make([][]float64, ny)
	for iy := range ny {
		g.Matrix[iy] = make([]float64, nx)
		g.ErrMatrix[iy] = make([]float64, nx)
		for ix := range nx {
			g.Matrix[iy][ix] = h.Content(ix, iy)
			g.ErrMatrix[iy][ix] = h.Error(ix, iy)
		}
	}
	return g
}

func bins(edges []float64) int {
	if len(edges) < 2 {
		return 0
	}
	return len(edges) - 1
}

// Shape returns the number of rows (y bins) and columns (x bins).
func (g *Grid) Shape() (rows, cols int) {
	return bins(g.YEdges), bins(g.XEdges)
}

// Sum returns the total of all cells.
func (g *Grid) Sum() float64 {
	var sum float64
	for _, row := range g.Matrix {
		sum += algo.Sum(row)
	}
	return sum
}

// Rebin merges nx adjacent x bins and ny adjacent y bins. All state is
// replaced at once; on error the Grid is left untouched.
func (g *Grid) Rebin(nx, ny int) error {
	if nx == 1 && ny == 1 {
		return nil
	}
	clone := g.src.Clone(g.id)
	if err := rebinGrid(clone, nx, ny); err != nil {
		return err
	}
	fresh := extractGrid(clone)
	g.XEdges = fresh.XEdges
	g.YEdges = fresh.YEdges
	g.Matrix = fresh.Matrix
	g.ErrMatrix = fresh.ErrMatrix
	g.src = clone
	return nil
}

// ProduceHeatmapSeries shapes the Grid into heatmap inputs. Masked cells are
// NaN. When transposing, the scales apply to the swapped axes. The Grid itself
// is not modified.
func (g *Grid) ProduceHeatmapSeries(opts HeatmapOptions) schema.HeatmapSeries {
	var m [][]float64
	if opts.KillZeros {
		m = algo.MaskZeros(g.Matrix)
	} else {
		m = algo.CopyMatrix(g.Matrix)
	}
	xe, ye := g.XEdges, g.YEdges
	if opts.Transpose {
		xe, ye = ye, xe
		m = algo.Transpose(m)
	}
	return schema.HeatmapSeries{
		Name:   g.Name,
		XEdges: algo.Scaled(xe, opts.XScale),
		YEdges: algo.Scaled(ye, opts.YScale),
		Matrix: m,
	}
}

// ProjectAlongX sums rows first..last for every x bin and returns a Series
// over the x axis. Bounds are 0-based and inclusive; a negative last means the
// final row. Errors are combined in quadrature.
func (g *Grid) ProjectAlongX(first, last int, opts ...Option) (*Series, error) {
	rows, _ := g.Shape()
	first, last, err := binRange(schema.YAxis, first, last, rows)
	if err != nil {
		return nil, err
	}
	src := &projected{
		edges:  append([]float64(nil), g.XEdges...),
		values: algo.ColumnSums(g.Matrix, first, last),
		errs:   algo.ColumnQuadrature(g.ErrMatrix, first, last),
	}
	return g.projection(src, "_px", first, last, opts)
}

// ProjectAlongY sums columns first..last for every y bin and returns a Series
// over the y axis.
func (g *Grid) ProjectAlongY(first, last int, opts ...Option) (*Series, error) {
	_, cols := g.Shape()
	first, last, err := binRange(schema.XAxis, first, last, cols)
	if err != nil {
		return nil, err
	}
	src := &projected{
		edges:  append([]float64(nil), g.YEdges...),
		values: algo.RowSums(g.Matrix, first, last),
		errs:   algo.RowQuadrature(g.ErrMatrix, first, last),
	}
	return g.projection(src, "_py", first, last, opts)
}

func (g *Grid) projection(src *projected, suffix string, first, last int, opts []Option) (*Series, error) {
	s, err := NewSeries(src, fmt.Sprintf("%s%s[%d:%d]", g.id, suffix, first, last), opts...)
	if err != nil {
		return nil, err
	}
	s.Name = g.Name + suffix
	return s, nil
}

func binRange(axis schema.Axis, first, last, n int) (int, int, error) {
	if last < 0 {
		last = n - 1
	}
	if first < 0 || first > last || last >= n {
		return 0, 0, &RangeError{Axis: axis, First: first, Last: last, Bins: n}
	}
	return first, last, nil
}
