package core

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/huangsam/binbridge/schema"
)

// defaultTickCount caps the number of major ticks in summaries.
const defaultTickCount = 6

// AxisTicks returns nice major and minor tick positions covering lo..hi.
func AxisTicks(lo, hi float64, maxTicks int) (major, minor []float64) {
	if maxTicks < 1 || math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
		return nil, nil
	}
	ls := scale.Linear{Min: lo, Max: hi}
	return ls.Ticks(scale.TickOptions{Max: maxTicks})
}

// Summary describes the Series.
func (s *Series) Summary() schema.Summary {
	out := schema.Summary{
		Name:   s.Name,
		Kind:   schema.KindOneDimensional,
		Bins:   []int{s.Len()},
		Sum:    s.Sum(),
		Mean:   s.Mean(),
		StdDev: s.StdDev(),
	}
	out.XMin, out.XMax, out.MajorTicks = axisSummary(s.Edges())
	return out
}

// Summary describes the Grid. Mean and StdDev are taken along x.
func (g *Grid) Summary() schema.Summary {
	rows, cols := g.Shape()
	out := schema.Summary{
		Name: g.Name,
		Kind: schema.KindTwoDimensional,
		Bins: []int{cols, rows},
		Sum:  g.Sum(),
	}
	out.Mean, out.StdDev = math.NaN(), math.NaN()
	if rows > 0 {
		if px, err := g.ProjectAlongX(0, -1); err == nil {
			out.Mean, out.StdDev = px.Mean(), px.StdDev()
		}
	}
	out.XMin, out.XMax, out.MajorTicks = axisSummary(g.XEdges)
	return out
}

func axisSummary(edges []float64) (lo, hi float64, ticks []float64) {
	if len(edges) == 0 {
		return math.NaN(), math.NaN(), nil
	}
	lo, hi = stats.Bounds(edges)
	ticks, _ = AxisTicks(lo, hi, defaultTickCount)
	return lo, hi, ticks
}
