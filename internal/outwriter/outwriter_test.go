package outwriter

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclements/go-gg/gg"
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testConfig(t *testing.T, mode schema.OutputMode, ext string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     mode,
		OutputFile: filepath.Join(t.TempDir(), "out."+ext),
		Precision:  2,
		Width:      100,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(content)
}

func samplePoints() schema.PointSeries {
	return schema.PointSeries{
		Name:     "pt",
		X:        []float64{5, 15},
		Y:        []float64{2, 4},
		YErr:     []float64{0.5, 1},
		YErrLow:  []float64{0.5, 1},
		YErrHigh: []float64{0.5, 1},
	}
}

func sampleHeatmap() schema.HeatmapSeries {
	return schema.HeatmapSeries{
		Name:   "map",
		XEdges: []float64{0, 1, 2},
		YEdges: []float64{0, 5},
		Matrix: [][]float64{{1, math.NaN()}},
	}
}

func TestWritePoints_Text(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "txt")
	require.NoError(t, NewOutWriter().WritePoints(samplePoints(), cfg))

	out := readOutput(t, cfg)
	assert.True(t, strings.HasPrefix(out, "pt\n"))
	assert.Contains(t, out, "15.00")
	assert.Contains(t, out, "4.00")
	assert.Contains(t, out, "0.50")
}

func TestWriteHeatmap_TextMasksCells(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "txt")
	require.NoError(t, NewOutWriter().WriteHeatmap(sampleHeatmap(), cfg))
	assert.Contains(t, readOutput(t, cfg), " - ")
}

func TestWriteHeatmap_CSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "csv")
	cfg.Precision = 1
	require.NoError(t, NewOutWriter().WriteHeatmap(sampleHeatmap(), cfg))

	lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
	assert.Equal(t, []string{
		"x_low,x_high,y_low,y_high,value",
		"0.0,1.0,0.0,5.0,1.0",
		"1.0,2.0,0.0,5.0,",
	}, lines)
}

func TestWriteHeatmap_JSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut, "json")
	require.NoError(t, NewOutWriter().WriteHeatmap(sampleHeatmap(), cfg))

	var got struct {
		Name   string       `json:"name"`
		Matrix [][]*float64 `json:"matrix"`
	}
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &got))
	assert.Equal(t, "map", got.Name)
	require.Len(t, got.Matrix, 1)
	require.NotNil(t, got.Matrix[0][0])
	assert.InDelta(t, 1.0, *got.Matrix[0][0], 1e-12)
	assert.Nil(t, got.Matrix[0][1])
}

func TestWriteBar_JSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut, "json")
	bars := schema.BarSeries{Name: "pt", X: []float64{5, 15}, Y: []float64{2, 4}, Width: []float64{10, 10}}
	require.NoError(t, NewOutWriter().WriteBar(bars, cfg))

	var got schema.BarSeries
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &got))
	assert.Equal(t, bars, got)
}

func TestWriteListing_XLSX(t *testing.T) {
	cfg := testConfig(t, schema.XLSXOut, "xlsx")
	listing := schema.NameListing{
		Scope: "run1/jets",
		Entries: []schema.NameEntry{
			{Name: "pt", Kind: schema.KindOneDimensional},
			{Name: "map", Kind: schema.KindTwoDimensional},
		},
	}
	require.NoError(t, NewOutWriter().WriteListing(listing, cfg))

	book, err := excelize.OpenFile(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = book.Close() }()

	rows, err := book.GetRows("run1_jets")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "kind"}, {"pt", "1d"}, {"map", "2d"}}, rows)
}

func TestWriteSummary_XLSXLeavesUndefinedEmpty(t *testing.T) {
	cfg := testConfig(t, schema.XLSXOut, "xlsx")
	summary := schema.Summary{
		Name: "empty", Kind: schema.KindOneDimensional, Bins: []int{2},
		Mean: math.NaN(), StdDev: math.NaN(), XMin: 0, XMax: 2,
	}
	require.NoError(t, NewOutWriter().WriteSummary(summary, cfg))

	book, err := excelize.OpenFile(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = book.Close() }()

	mean, err := book.GetCellValue("empty", "B6")
	require.NoError(t, err)
	assert.Empty(t, mean)
	bins, err := book.GetCellValue("empty", "B4")
	require.NoError(t, err)
	assert.Equal(t, "2", bins)
}

func TestWrite_FileOnlyFormatsNeedPath(t *testing.T) {
	for _, mode := range []schema.OutputMode{schema.ParquetOut, schema.XLSXOut} {
		cfg := &contract.Config{Output: mode, Precision: 2}
		err := NewOutWriter().WritePoints(samplePoints(), cfg)
		assert.Error(t, err, mode)
	}
}

func TestWritePoints_Parquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut, "parquet")
	require.NoError(t, NewOutWriter().WritePoints(samplePoints(), cfg))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWrite_SVG(t *testing.T) {
	ow := NewOutWriter()
	tests := []struct {
		name  string
		write func(cfg *contract.Config) error
	}{
		{"points", func(cfg *contract.Config) error { return ow.WritePoints(samplePoints(), cfg) }},
		{"band", func(cfg *contract.Config) error {
			return ow.WriteBand(schema.BandSeries{
				Name: "pt", X: []float64{5, 15}, Y: []float64{2, 4},
				YLow: []float64{1, 3}, YHigh: []float64{3, 5},
			}, cfg)
		}},
		{"bar", func(cfg *contract.Config) error {
			return ow.WriteBar(schema.BarSeries{Name: "pt", X: []float64{5, 15}, Y: []float64{2, 4}, Width: []float64{10, 10}}, cfg)
		}},
		{"heatmap", func(cfg *contract.Config) error { return ow.WriteHeatmap(sampleHeatmap(), cfg) }},
		{"points single bin", func(cfg *contract.Config) error {
			return ow.WritePoints(schema.PointSeries{
				Name: "pt", X: []float64{5}, Y: []float64{2},
				YErr: []float64{0}, YErrLow: []float64{0}, YErrHigh: []float64{0},
			}, cfg)
		}},
		{"band single bin", func(cfg *contract.Config) error {
			return ow.WriteBand(schema.BandSeries{
				Name: "pt", X: []float64{5}, Y: []float64{2}, YLow: []float64{2}, YHigh: []float64{2},
			}, cfg)
		}},
		{"bar single empty bin", func(cfg *contract.Config) error {
			return ow.WriteBar(schema.BarSeries{Name: "pt", X: []float64{5}, Y: []float64{0}, Width: []float64{10}}, cfg)
		}},
		{"heatmap single row", func(cfg *contract.Config) error {
			return ow.WriteHeatmap(schema.HeatmapSeries{
				Name: "map", XEdges: []float64{0, 1, 2}, YEdges: []float64{0, 5},
				Matrix: [][]float64{{1, 2}},
			}, cfg)
		}},
		{"heatmap single column", func(cfg *contract.Config) error {
			return ow.WriteHeatmap(schema.HeatmapSeries{
				Name: "map", XEdges: []float64{0, 1}, YEdges: []float64{0, 5, 10},
				Matrix: [][]float64{{1}, {3}},
			}, cfg)
		}},
		{"heatmap variable widths", func(cfg *contract.Config) error {
			return ow.WriteHeatmap(schema.HeatmapSeries{
				Name: "map", XEdges: []float64{0, 1, 2, 6}, YEdges: []float64{0, 5},
				Matrix: [][]float64{{1, 2, 3}},
			}, cfg)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, schema.SVGOut, "svg")
			require.NoError(t, tt.write(cfg))
			assert.Contains(t, readOutput(t, cfg), "<svg")
		})
	}
}

func TestWrite_SVGRejections(t *testing.T) {
	ow := NewOutWriter()

	cfg := testConfig(t, schema.SVGOut, "svg")
	err := ow.WriteListing(schema.NameListing{}, cfg)
	assert.ErrorContains(t, err, "not supported for listing")

	masked := schema.HeatmapSeries{
		Name: "map", XEdges: []float64{0, 1}, YEdges: []float64{0, 1},
		Matrix: [][]float64{{math.NaN()}},
	}
	err = ow.WriteHeatmap(masked, cfg)
	assert.ErrorIs(t, err, errEmptyPlot)
}

func TestWritePlot_RenderFailure(t *testing.T) {
	var buf bytes.Buffer
	err := writePlot(&buf, 1, func() *gg.Plot { panic("not implemented: layout") })
	assert.ErrorContains(t, err, "not implemented: layout")
}

func TestRegularSpacing(t *testing.T) {
	assert.True(t, regularSpacing(nil))
	assert.True(t, regularSpacing([]float64{0.5}))
	assert.True(t, regularSpacing([]float64{0.5, 2.5, 1.5, 0.5}))
	assert.False(t, regularSpacing([]float64{0.5, 1.5, 4}))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{10, 15},
		{50, 30},
		{200, 70},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, getMaxTableNameWidth(&contract.Config{Width: tt.width}), tt.width)
	}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "run1_jets_pt", sheetName("run1/jets/pt"))
	assert.Equal(t, "data", sheetName(""))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), maxSheetNameLen)
}
