package outwriter

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/huangsam/binbridge/schema"
)

// Default SVG canvas size in pixels.
const (
	svgWidth  = 640
	svgHeight = 400
)

var errEmptyPlot = errors.New("nothing to plot")

// writePlot builds and renders a plot as SVG. Plots without data are rejected.
// go-gg reports unsupported layouts by panicking; those become errors.
func writePlot(w io.Writer, points int, build func() *gg.Plot) (err error) {
	if points == 0 {
		return errEmptyPlot
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to render svg: %v", r)
		}
	}()
	return build().WriteSVG(w, svgWidth, svgHeight)
}

// extentScale returns a linear scale covering every finite value of cols.
// A zero-width extent is widened around its value so ticks can be placed.
func extentScale(cols ...[]float64) gg.ContinuousScaler {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, col := range cols {
		for _, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	if lo == hi {
		pad := math.Max(math.Abs(lo)/2, 0.5)
		lo, hi = lo-pad, hi+pad
	}
	return gg.NewLinearScaler().Include(lo).Include(hi)
}

// regularSpacing reports whether every value of vs sits on a multiple of the
// smallest gap between distinct values, which tiles require.
func regularSpacing(vs []float64) bool {
	u := slices.Compact(slices.Sorted(slices.Values(vs)))
	if len(u) < 3 {
		return true
	}
	gap := math.Inf(1)
	for i := 1; i < len(u); i++ {
		gap = math.Min(gap, u[i]-u[i-1])
	}
	for _, v := range u {
		_, frac := math.Modf((v - u[0]) / gap)
		if frac >= 0.001 && frac <= 0.999 {
			return false
		}
	}
	return true
}

// unmaskedCells counts the heatmap cells that hold a value.
func unmaskedCells(h schema.HeatmapSeries) int {
	n := 0
	for _, row := range h.Matrix {
		for _, v := range row {
			if !math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// pointsPlot draws markers with a shaded error extent.
func pointsPlot(p schema.PointSeries) *gg.Plot {
	lo := make([]float64, len(p.Y))
	hi := make([]float64, len(p.Y))
	for i, y := range p.Y {
		lo[i] = y - p.YErrLow[i]
		hi[i] = y + p.YErrHigh[i]
	}
	t := table.NewBuilder(nil).
		Add("x", p.X).
		Add("y", p.Y).
		Add("low", lo).
		Add("high", hi).
		Done()

	plot := gg.NewPlot(t)
	plot.SetScale("x", extentScale(p.X))
	plot.SetScale("y", extentScale(lo, hi, p.Y))
	plot.Add(gg.LayerArea{X: "x", Upper: "high", Lower: "low", Fill: plot.Const(color.Gray{224})})
	plot.Add(gg.LayerPoints{X: "x", Y: "y"})
	plot.Add(gg.Title(p.Name), gg.AxisLabel("x", "x"), gg.AxisLabel("y", "y"))
	return plot
}

// bandPlot draws the central line over its gray band.
func bandPlot(b schema.BandSeries) *gg.Plot {
	t := table.NewBuilder(nil).
		Add("x", b.X).
		Add("y", b.Y).
		Add("ylow", b.YLow).
		Add("yhigh", b.YHigh).
		Done()

	plot := gg.NewPlot(t)
	plot.SetScale("x", extentScale(b.X))
	plot.SetScale("y", extentScale(b.YLow, b.YHigh, b.Y))
	plot.Add(gg.LayerArea{X: "x", Upper: "yhigh", Lower: "ylow", Fill: plot.Const(color.Gray{192})})
	plot.Add(gg.LayerLines{X: "x", Y: "y"})
	plot.Add(gg.Title(b.Name), gg.AxisLabel("x", "x"), gg.AxisLabel("y", "y"))
	return plot
}

// barPlot draws the bars as a step outline anchored at zero.
func barPlot(b schema.BarSeries) *gg.Plot {
	t := table.NewBuilder(nil).
		Add("x", b.X).
		Add("y", b.Y).
		Done()

	lo := make([]float64, len(b.X))
	hi := make([]float64, len(b.X))
	for i, x := range b.X {
		lo[i] = x - b.Width[i]/2
		hi[i] = x + b.Width[i]/2
	}
	plot := gg.NewPlot(t)
	plot.SetScale("x", extentScale(lo, hi))
	plot.SetScale("y", extentScale([]float64{0}, b.Y))
	plot.Add(gg.LayerSteps{LayerPaths: gg.LayerPaths{X: "x", Y: "y"}, Step: gg.StepHMid})
	plot.Add(gg.Title(b.Name), gg.AxisLabel("x", "x"), gg.AxisLabel("y", "y"))
	return plot
}

// heatmapPlot draws one tile per unmasked cell at the cell center. Grids with
// variable bin widths get colored markers instead of tiles.
func heatmapPlot(h schema.HeatmapSeries) *gg.Plot {
	var xs, ys, vs []float64
	for iy, row := range h.Matrix {
		for ix, v := range row {
			if math.IsNaN(v) {
				continue
			}
			xs = append(xs, (h.XEdges[ix]+h.XEdges[ix+1])/2)
			ys = append(ys, (h.YEdges[iy]+h.YEdges[iy+1])/2)
			vs = append(vs, v)
		}
	}
	t := table.NewBuilder(nil).
		Add("x", xs).
		Add("y", ys).
		Add("value", vs).
		Done()

	plot := gg.NewPlot(t)
	plot.SetScale("x", extentScale(h.XEdges))
	plot.SetScale("y", extentScale(h.YEdges))
	if regularSpacing(xs) && regularSpacing(ys) {
		plot.Add(gg.LayerTiles{X: "x", Y: "y", Fill: "value"})
	} else {
		plot.Add(gg.LayerPoints{X: "x", Y: "y", Color: "value"})
	}
	plot.Add(gg.Title(h.Name), gg.AxisLabel("x", "x"), gg.AxisLabel("y", "y"))
	return plot
}
