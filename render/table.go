package render

import (
	"fmt"
	"strconv"
	"time"
)

// Table is the ordered grid a priced BOM renders to. Row zero is the header;
// the row before the final spacer is the subtotal. Rows may be ragged (raw
// rows shorter than the header); missing cells render empty.
type Table struct {
	Title string
	Rows  [][]any
}

// Columns returns the widest row length.
func (t *Table) Columns() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// CharWidths returns, per column, the maximum rendered cell width in
// characters across all rows including the header. Both artifacts derive
// their physical column widths from this one measurement.
func (t *Table) CharWidths() []int {
	widths := make([]int, t.Columns())
	for _, row := range t.Rows {
		for c, v := range row {
			if n := len(CellText(v)); n > widths[c] {
				widths[c] = n
			}
		}
	}
	return widths
}

// CellText renders a cell value for display: numbers as plain strings,
// booleans as TRUE/FALSE, timestamps as a calendar date or clock reading.
func CellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}
