// Package parquet provides row types and functions for exporting plotting
// payloads to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"math"
	"os"

	"github.com/huangsam/binbridge/schema"
	"github.com/parquet-go/parquet-go"
)

// PointRow is a single point with its error bar.
type PointRow struct {
	Name     string  `parquet:"name,snappy,dict"`
	X        float64 `parquet:"x,snappy"`
	Y        float64 `parquet:"y,snappy"`
	YErr     float64 `parquet:"yerr,snappy"`
	YErrLow  float64 `parquet:"yerr_low,snappy"`
	YErrHigh float64 `parquet:"yerr_high,snappy"`
}

// BandRow is a single point of a line with its band.
type BandRow struct {
	Name  string  `parquet:"name,snappy,dict"`
	X     float64 `parquet:"x,snappy"`
	Y     float64 `parquet:"y,snappy"`
	YLow  float64 `parquet:"ylow,snappy"`
	YHigh float64 `parquet:"yhigh,snappy"`
}

// BarRow is a single bar.
type BarRow struct {
	Name  string  `parquet:"name,snappy,dict"`
	X     float64 `parquet:"x,snappy"`
	Y     float64 `parquet:"y,snappy"`
	Width float64 `parquet:"width,snappy"`
}

// CellRow is a single heatmap cell with its bin bounds.
type CellRow struct {
	Name  string  `parquet:"name,snappy,dict"`
	XLow  float64 `parquet:"x_low,snappy"`
	XHigh float64 `parquet:"x_high,snappy"`
	YLow  float64 `parquet:"y_low,snappy"`
	YHigh float64 `parquet:"y_high,snappy"`

	// Value is null for masked cells
	Value *float64 `parquet:"value,optional,snappy"`
}

// ListingRow is a single name of a scope listing.
type ListingRow struct {
	Scope string `parquet:"scope,snappy,dict"`
	Name  string `parquet:"name,snappy"`
	Kind  string `parquet:"kind,snappy,dict"`
}

// SummaryRow describes a dataset. Undefined statistics are null.
type SummaryRow struct {
	Name   string   `parquet:"name,snappy"`
	Kind   string   `parquet:"kind,snappy,dict"`
	XBins  int32    `parquet:"x_bins,snappy"`
	YBins  *int32   `parquet:"y_bins,optional,snappy"`
	Sum    float64  `parquet:"sum,snappy"`
	Mean   *float64 `parquet:"mean,optional,snappy"`
	StdDev *float64 `parquet:"stddev,optional,snappy"`
	XMin   *float64 `parquet:"x_min,optional,snappy"`
	XMax   *float64 `parquet:"x_max,optional,snappy"`
}

// Write writes rows to a Parquet file at outputPath. The schema is derived
// from the struct tags of T.
func Write[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertPointSeries flattens a point payload into rows.
func ConvertPointSeries(p schema.PointSeries) []PointRow {
	rows := make([]PointRow, len(p.X))
	for i := range p.X {
		rows[i] = PointRow{
			Name:     p.Name,
			X:        p.X[i],
			Y:        p.Y[i],
			YErr:     p.YErr[i],
			YErrLow:  p.YErrLow[i],
			YErrHigh: p.YErrHigh[i],
		}
	}
	return rows
}

// ConvertBandSeries flattens a band payload into rows.
func ConvertBandSeries(b schema.BandSeries) []BandRow {
	rows := make([]BandRow, len(b.X))
	for i := range b.X {
		rows[i] = BandRow{Name: b.Name, X: b.X[i], Y: b.Y[i], YLow: b.YLow[i], YHigh: b.YHigh[i]}
	}
	return rows
}

// ConvertBarSeries flattens a bar payload into rows.
func ConvertBarSeries(b schema.BarSeries) []BarRow {
	rows := make([]BarRow, len(b.X))
	for i := range b.X {
		rows[i] = BarRow{Name: b.Name, X: b.X[i], Y: b.Y[i], Width: b.Width[i]}
	}
	return rows
}

// ConvertHeatmapSeries flattens a heatmap into one row per cell, row-major.
func ConvertHeatmapSeries(h schema.HeatmapSeries) []CellRow {
	var rows []CellRow
	for iy, row := range h.Matrix {
		for ix, v := range row {
			rows = append(rows, CellRow{
				Name:  h.Name,
				XLow:  h.XEdges[ix],
				XHigh: h.XEdges[ix+1],
				YLow:  h.YEdges[iy],
				YHigh: h.YEdges[iy+1],
				Value: nullable(v),
			})
		}
	}
	return rows
}

// ConvertNameListing flattens a scope listing into rows.
func ConvertNameListing(l schema.NameListing) []ListingRow {
	rows := make([]ListingRow, len(l.Entries))
	for i, e := range l.Entries {
		rows[i] = ListingRow{Scope: l.Scope, Name: e.Name, Kind: string(e.Kind)}
	}
	return rows
}

// ConvertSummary turns a summary into a single row.
func ConvertSummary(s schema.Summary) []SummaryRow {
	row := SummaryRow{
		Name:   s.Name,
		Kind:   string(s.Kind),
		Sum:    s.Sum,
		Mean:   nullable(s.Mean),
		StdDev: nullable(s.StdDev),
		XMin:   nullable(s.XMin),
		XMax:   nullable(s.XMax),
	}
	if len(s.Bins) > 0 {
		row.XBins = int32(s.Bins[0])
	}
	if len(s.Bins) > 1 {
		y := int32(s.Bins[1])
		row.YBins = &y
	}
	return []SummaryRow{row}
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
