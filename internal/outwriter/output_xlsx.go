package outwriter

import (
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/binbridge/schema"
	"github.com/xuri/excelize/v2"
)

// maxSheetNameLen is the longest sheet name a workbook accepts.
const maxSheetNameLen = 31

// writeXLSXFrame saves a frame as a single-sheet workbook at path.
// Masked values are left as empty cells.
func writeXLSXFrame(path string, f frame) error {
	book := excelize.NewFile()
	defer func() { _ = book.Close() }()

	sheet := sheetName(f.title)
	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(f.header))
	for i, h := range f.header {
		header[i] = h
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range f.rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = xlsxValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// xlsxValue converts a frame cell into a workbook value. Masked values become nil.
func xlsxValue(v any) any {
	switch c := v.(type) {
	case float64:
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil
		}
		return c
	case nameCell:
		return string(c)
	case schema.Kind:
		return string(c)
	default:
		return c
	}
}

// sheetName strips the characters a sheet name may not contain.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, title)
	name = strings.Trim(name, "'")
	if name == "" {
		name = "data"
	}
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}
