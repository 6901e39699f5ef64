package parquet

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/binbridge/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRows[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestRowStructTags(t *testing.T) {
	tests := []struct {
		row     any
		columns []string
	}{
		{new(PointRow), []string{"name", "x", "y", "yerr", "yerr_low", "yerr_high"}},
		{new(BandRow), []string{"name", "x", "y", "ylow", "yhigh"}},
		{new(BarRow), []string{"name", "x", "y", "width"}},
		{new(CellRow), []string{"name", "x_low", "x_high", "y_low", "y_high", "value"}},
		{new(ListingRow), []string{"scope", "name", "kind"}},
		{new(SummaryRow), []string{"name", "kind", "x_bins", "y_bins", "sum", "mean", "stddev", "x_min", "x_max"}},
	}
	for _, tt := range tests {
		s := parquet.SchemaOf(tt.row)
		require.NotNil(t, s)
		for _, col := range tt.columns {
			_, ok := s.Lookup(col)
			assert.True(t, ok, "column %s should exist in %s", col, s.Name())
		}
	}
}

func TestWritePointRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.parquet")
	p := schema.PointSeries{
		Name:     "pt",
		X:        []float64{1, 2},
		Y:        []float64{10, 20},
		YErr:     []float64{1, 2},
		YErrLow:  []float64{0.5, 2},
		YErrHigh: []float64{1, 1.5},
	}
	require.NoError(t, Write(ConvertPointSeries(p), path))

	rows := readRows[PointRow](t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, PointRow{Name: "pt", X: 2, Y: 20, YErr: 2, YErrLow: 2, YErrHigh: 1.5}, rows[1])
}

func TestWriteCellRows_MaskedCellsAreNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.parquet")
	h := schema.HeatmapSeries{
		Name:   "map",
		XEdges: []float64{0, 1, 2},
		YEdges: []float64{0, 10},
		Matrix: [][]float64{{3, math.NaN()}},
	}
	require.NoError(t, Write(ConvertHeatmapSeries(h), path))

	rows := readRows[CellRow](t, path)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Value)
	assert.Equal(t, 3.0, *rows[0].Value)
	assert.Nil(t, rows[1].Value)
	assert.Equal(t, 1.0, rows[1].XLow)
	assert.Equal(t, 2.0, rows[1].XHigh)
	assert.Equal(t, 10.0, rows[1].YHigh)
}

func TestConvertBandAndBar(t *testing.T) {
	band := ConvertBandSeries(schema.BandSeries{
		Name: "b", X: []float64{1}, Y: []float64{5}, YLow: []float64{4}, YHigh: []float64{6},
	})
	assert.Equal(t, []BandRow{{Name: "b", X: 1, Y: 5, YLow: 4, YHigh: 6}}, band)

	bar := ConvertBarSeries(schema.BarSeries{
		Name: "b", X: []float64{1, 2}, Y: []float64{5, 6}, Width: []float64{1, 1},
	})
	assert.Len(t, bar, 2)
	assert.Equal(t, 6.0, bar[1].Y)
}

func TestConvertNameListing(t *testing.T) {
	rows := ConvertNameListing(schema.NameListing{
		Scope: "run1",
		Entries: []schema.NameEntry{
			{Name: "pt", Kind: schema.KindOneDimensional},
			{Name: "jets", Kind: schema.KindScope},
		},
	})
	assert.Equal(t, []ListingRow{
		{Scope: "run1", Name: "pt", Kind: "1d"},
		{Scope: "run1", Name: "jets", Kind: "scope"},
	}, rows)
}

func TestWriteSummaryRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.parquet")
	s := schema.Summary{
		Name:   "map",
		Kind:   schema.KindTwoDimensional,
		Bins:   []int{3, 2},
		Sum:    13,
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		XMin:   0,
		XMax:   3,
	}
	require.NoError(t, Write(ConvertSummary(s), path))

	rows := readRows[SummaryRow](t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(3), rows[0].XBins)
	require.NotNil(t, rows[0].YBins)
	assert.Equal(t, int32(2), *rows[0].YBins)
	assert.Nil(t, rows[0].Mean)
	require.NotNil(t, rows[0].XMax)
	assert.Equal(t, 3.0, *rows[0].XMax)
}

func TestWrite_BadPath(t *testing.T) {
	err := Write([]BarRow{}, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
