package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet renders the table as a spreadsheet workbook with one sheet, the
// table's rows in order, and auto-fitted column widths.
func Sheet(t *Table, cfg Config) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		cells := make([]any, len(row))
		copy(cells, row)
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	for c, chars := range t.CharWidths() {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, float64(chars+cfg.SheetPadding)); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	// Fixed document properties keep identical inputs byte-identical.
	stamp := cfg.Timestamp.UTC().Format(time.RFC3339)
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:    t.Title,
		Created:  stamp,
		Modified: stamp,
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName sanitizes a title into a legal sheet name: the characters
// : \ / ? * [ ] are forbidden and names cap out at 31 characters.
func sheetName(title string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, title)
	if len(s) > 31 {
		s = s[:31]
	}
	if s == "" {
		s = "Bill of Materials"
	}
	return s
}
