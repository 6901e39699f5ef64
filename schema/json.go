package schema

import (
	"encoding/json"
	"math"
)

// NullableFloat renders NaN and infinities as JSON null.
type NullableFloat float64

// MarshalJSON implements json.Marshaler.
func (f NullableFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// NullableRow converts a row so masked cells encode as null.
func NullableRow(xs []float64) []NullableFloat {
	out := make([]NullableFloat, len(xs))
	for i, x := range xs {
		out[i] = NullableFloat(x)
	}
	return out
}

// MarshalJSON encodes masked cells as null.
func (h HeatmapSeries) MarshalJSON() ([]byte, error) {
	matrix := make([][]NullableFloat, len(h.Matrix))
	for i, row := range h.Matrix {
		matrix[i] = NullableRow(row)
	}
	return json.Marshal(struct {
		Name   string            `json:"name"`
		XEdges []float64         `json:"x_edges"`
		YEdges []float64         `json:"y_edges"`
		Matrix [][]NullableFloat `json:"matrix"`
	}{h.Name, h.XEdges, h.YEdges, matrix})
}

// MarshalJSON encodes undefined statistics as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string        `json:"name"`
		Kind       Kind          `json:"kind"`
		Bins       []int         `json:"bins"`
		Sum        NullableFloat `json:"sum"`
		Mean       NullableFloat `json:"mean"`
		StdDev     NullableFloat `json:"stddev"`
		XMin       NullableFloat `json:"x_min"`
		XMax       NullableFloat `json:"x_max"`
		MajorTicks []float64     `json:"major_ticks"`
	}{
		s.Name, s.Kind, s.Bins,
		NullableFloat(s.Sum), NullableFloat(s.Mean), NullableFloat(s.StdDev),
		NullableFloat(s.XMin), NullableFloat(s.XMax), s.MajorTicks,
	})
}
