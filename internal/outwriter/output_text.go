package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeTextFrame renders a frame as a table with a colored title line.
func writeTextFrame(w io.Writer, f frame, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision, "-")
	maxNameWidth := getMaxTableNameWidth(cfg)

	titleFunc := fmt.Sprint
	if cfg.UseColors {
		titleFunc = color.New(color.FgHiWhite, color.Bold).SprintFunc()
	}
	if f.title != "" {
		if _, err := fmt.Fprintln(w, titleFunc(f.title)); err != nil {
			return err
		}
	}

	data := make([][]string, 0, len(f.rows))
	for _, row := range f.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			switch c := v.(type) {
			case nameCell:
				cells[i] = contract.TruncateName(string(c), maxNameWidth)
			case schema.Kind:
				if cfg.UseColors {
					cells[i] = contract.GetColorKindLabel(c)
				} else {
					cells[i] = contract.GetPlainKindLabel(c)
				}
			default:
				cells[i] = formatCell(v, fmtFloat)
			}
		}
		data = append(data, cells)
	}

	table := tablewriter.NewWriter(w)
	table.Header(f.header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVFrame writes a frame as CSV. Masked values are empty fields.
func writeCSVFrame(w io.Writer, f frame, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision, "")
	return writeCSVWithHeader(w, f.header, func(csvWriter *csv.Writer) error {
		for _, row := range f.rows {
			record := make([]string, len(row))
			for i, v := range row {
				record[i] = formatCell(v, fmtFloat)
			}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatCell renders a single frame cell as plain text.
func formatCell(v any, fmtFloat func(float64) string) string {
	switch c := v.(type) {
	case float64:
		return fmtFloat(c)
	case int:
		return strconv.Itoa(c)
	case nameCell:
		return string(c)
	case schema.Kind:
		return string(c)
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
