// Package outwriter renders plotting payloads in every supported output format.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/gg"
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/internal/parquet"
	"github.com/huangsam/binbridge/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// Commands and tools hand it a payload and the configuration selects the format.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// output bundles one payload with its renderings.
type output struct {
	kind    string
	payload any
	frame   frame
	parquet func(path string) error
	svg     func(w io.Writer) error
}

// WritePoints prints a point series using the configured output format.
func (ow *OutWriter) WritePoints(p schema.PointSeries, cfg *contract.Config) error {
	return ow.write(cfg, output{
		kind:    "points",
		payload: p,
		frame:   pointsFrame(p),
		parquet: func(path string) error { return parquet.Write(parquet.ConvertPointSeries(p), path) },
		svg:     func(w io.Writer) error { return writePlot(w, len(p.X), func() *gg.Plot { return pointsPlot(p) }) },
	})
}

// WriteBand prints a band series using the configured output format.
func (ow *OutWriter) WriteBand(b schema.BandSeries, cfg *contract.Config) error {
	return ow.write(cfg, output{
		kind:    "band",
		payload: b,
		frame:   bandFrame(b),
		parquet: func(path string) error { return parquet.Write(parquet.ConvertBandSeries(b), path) },
		svg:     func(w io.Writer) error { return writePlot(w, len(b.X), func() *gg.Plot { return bandPlot(b) }) },
	})
}

// WriteBar prints a bar series using the configured output format.
func (ow *OutWriter) WriteBar(b schema.BarSeries, cfg *contract.Config) error {
	return ow.write(cfg, output{
		kind:    "bar",
		payload: b,
		frame:   barFrame(b),
		parquet: func(path string) error { return parquet.Write(parquet.ConvertBarSeries(b), path) },
		svg:     func(w io.Writer) error { return writePlot(w, len(b.X), func() *gg.Plot { return barPlot(b) }) },
	})
}

// WriteHeatmap prints a heatmap using the configured output format.
func (ow *OutWriter) WriteHeatmap(h schema.HeatmapSeries, cfg *contract.Config) error {
	return ow.write(cfg, output{
		kind:    "heatmap",
		payload: h,
		frame:   heatmapFrame(h),
		parquet: func(path string) error { return parquet.Write(parquet.ConvertHeatmapSeries(h), path) },
		svg: func(w io.Writer) error {
			return writePlot(w, unmaskedCells(h), func() *gg.Plot { return heatmapPlot(h) })
		},
	})
}

// WriteListing prints a scope listing using the configured output format.
func (ow *OutWriter) WriteListing(l schema.NameListing, cfg *contract.Config) error {
	return ow.write(cfg, output{
		kind:    "listing",
		payload: l,
		frame:   listingFrame(l),
		parquet: func(path string) error { return parquet.Write(parquet.ConvertNameListing(l), path) },
	})
}

// WriteSummary prints a dataset summary using the configured output format.
func (ow *OutWriter) WriteSummary(s schema.Summary, cfg *contract.Config) error {
	return ow.write(cfg, output{
		kind:    "summary",
		payload: s,
		frame:   summaryFrame(s),
		parquet: func(path string) error { return parquet.Write(parquet.ConvertSummary(s), path) },
	})
}

func (ow *OutWriter) write(cfg *contract.Config, o output) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, o.payload)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVFrame(w, o.frame, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires an output file")
		}
		if err := o.parquet(cfg.OutputFile); err != nil {
			return err
		}
		reportSaved("Wrote Parquet", cfg.OutputFile)
		return nil
	case schema.XLSXOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("xlsx output requires an output file")
		}
		if err := writeXLSXFrame(cfg.OutputFile, o.frame); err != nil {
			return err
		}
		reportSaved("Wrote workbook", cfg.OutputFile)
		return nil
	case schema.SVGOut:
		if o.svg == nil {
			return fmt.Errorf("svg output is not supported for %s", o.kind)
		}
		return writeWithFile(cfg.OutputFile, o.svg, "Wrote SVG")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextFrame(w, o.frame, cfg)
		}, "Wrote table")
	}
}

// getMaxTableNameWidth calculates the maximum width for object names in table
// output based on the terminal width.
func getMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Kind column plus borders and padding
	maxWidth := termWidth - 20
	return max(15, min(maxWidth, 70))
}
