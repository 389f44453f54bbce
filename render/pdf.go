package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF renders the table as a single-page PDF sized to its content: the page
// width is the sum of the column widths and the height covers every row.
// The header band is inverted, the spacer after the header and the final
// spacer are shaded, and the header and subtotal rows are bold.
func PDF(t *Table, cfg Config) ([]byte, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("cannot render an empty table")
	}

	colWidths := make([]float64, 0, t.Columns())
	pageWidth := 0.0
	for _, chars := range t.CharWidths() {
		w := cfg.colWidth(chars)
		colWidths = append(colWidths, w)
		pageWidth += w
	}
	rowHeight := cfg.rowHeight()
	pageHeight := rowHeight * float64(len(t.Rows))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetCreationDate(cfg.Timestamp)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	last := len(t.Rows) - 1
	y := 0.0
	for i, row := range t.Rows {
		style := ""
		if i == 0 || i == last-1 {
			style = "B"
		}

		x := 0.0
		for c, w := range colWidths {
			var v any
			if c < len(row) {
				v = row[c]
			}
			text := CellText(v)

			switch {
			case i == 0:
				pdf.SetFillColor(0, 0, 0)
				pdf.Rect(x, y, w, rowHeight, "F")
				pdf.SetTextColor(255, 255, 255)
			case i == 1 || i == last:
				pdf.SetFillColor(191, 191, 191)
				pdf.SetDrawColor(191, 191, 191)
				pdf.Rect(x, y, w, rowHeight, "F")
				pdf.SetTextColor(255, 255, 255)
			default:
				pdf.SetTextColor(0, 0, 0)
			}

			// Centering uses the regular-weight width so bold rows keep
			// the same alignment as the rest of the column.
			pdf.SetFont(cfg.FontFamily, "", cfg.FontSize)
			textWidth := pdf.GetStringWidth(text)
			pdf.SetFont(cfg.FontFamily, style, cfg.FontSize)

			baseline := y + rowHeight - (rowHeight-cfg.FontSize)/2 - cfg.FontSize/8
			pdf.Text(x+(w-textWidth)/2, baseline, text)
			x += w
		}
		y += rowHeight
	}

	pdf.SetFont(cfg.FontFamily, "", cfg.FontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(cfg.FontSize/2, pageHeight-(rowHeight-cfg.FontSize)/2-cfg.FontSize/8, cfg.Disclaimer)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
