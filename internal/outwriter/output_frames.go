package outwriter

import (
	"strconv"
	"strings"

	"github.com/huangsam/binbridge/schema"
)

// frame is the tabular form of a payload shared by the text, CSV and xlsx writers.
// Cells hold float64, int, string, nameCell or schema.Kind values.
type frame struct {
	title  string
	header []string
	rows   [][]any
}

// nameCell is an object name; the text table truncates it to the terminal width.
type nameCell string

func pointsFrame(p schema.PointSeries) frame {
	f := frame{title: p.Name, header: []string{"x", "y", "yerr", "yerr_low", "yerr_high"}}
	for i := range p.X {
		f.rows = append(f.rows, []any{p.X[i], p.Y[i], p.YErr[i], p.YErrLow[i], p.YErrHigh[i]})
	}
	return f
}

func bandFrame(b schema.BandSeries) frame {
	f := frame{title: b.Name, header: []string{"x", "y", "ylow", "yhigh"}}
	for i := range b.X {
		f.rows = append(f.rows, []any{b.X[i], b.Y[i], b.YLow[i], b.YHigh[i]})
	}
	return f
}

func barFrame(b schema.BarSeries) frame {
	f := frame{title: b.Name, header: []string{"x", "y", "width"}}
	for i := range b.X {
		f.rows = append(f.rows, []any{b.X[i], b.Y[i], b.Width[i]})
	}
	return f
}

// heatmapFrame lists one row per cell, row-major, in long format.
func heatmapFrame(h schema.HeatmapSeries) frame {
	f := frame{title: h.Name, header: []string{"x_low", "x_high", "y_low", "y_high", "value"}}
	for iy, row := range h.Matrix {
		for ix, v := range row {
			f.rows = append(f.rows, []any{h.XEdges[ix], h.XEdges[ix+1], h.YEdges[iy], h.YEdges[iy+1], v})
		}
	}
	return f
}

func listingFrame(l schema.NameListing) frame {
	title := l.Scope
	if title == "" {
		title = "/"
	}
	f := frame{title: title, header: []string{"name", "kind"}}
	for _, e := range l.Entries {
		f.rows = append(f.rows, []any{nameCell(e.Name), e.Kind})
	}
	return f
}

func summaryFrame(s schema.Summary) frame {
	bins := make([]string, len(s.Bins))
	for i, n := range s.Bins {
		bins[i] = strconv.Itoa(n)
	}
	ticks := make([]string, len(s.MajorTicks))
	for i, t := range s.MajorTicks {
		ticks[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}
	return frame{
		title:  s.Name,
		header: []string{"field", "value"},
		rows: [][]any{
			{"name", nameCell(s.Name)},
			{"kind", s.Kind},
			{"bins", strings.Join(bins, "x")},
			{"sum", s.Sum},
			{"mean", s.Mean},
			{"stddev", s.StdDev},
			{"x_min", s.XMin},
			{"x_max", s.XMax},
			{"major_ticks", strings.Join(ticks, " ")},
		},
	}
}
