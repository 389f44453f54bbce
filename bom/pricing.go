package bom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FreshSupaSulley/ABC/catalog"
	"github.com/FreshSupaSulley/ABC/render"
)

// Price resolves every line item against the catalog, computes customer and
// extended prices, and assembles the rendered table: header, spacer, one row
// per line item in declaration order, subtotal, trailing spacer.
//
// final distinguishes a real document request from a save-time dry run: only
// a final generation rejects an empty BOM.
func Price(name string, items []*LineItem, lookup catalog.Lookup, final bool) (*render.Table, error) {
	if final && len(items) == 0 {
		return nil, errf(KindEmptyBOM, "BOM is empty")
	}

	rows := make([][]any, 0, len(items)+4)
	rows = append(rows, headerRow(), spacerRow())

	subtotal := decimal.Zero
	for _, li := range items {
		if li.IsRaw() {
			rows = append(rows, li.Raw)
			continue
		}

		p, err := lookup.Product(li.Key)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, errf(KindUnknownProduct, "product %q does not exist", li.Key).withField(li.Key)
			}
			return nil, fmt.Errorf("catalog lookup for %q: %w", li.Key, err)
		}

		listPrice := decimal.Zero
		if p.ListPrice != nil {
			listPrice = *p.ListPrice
		}
		discount := decimal.Zero
		if p.Discount != nil {
			discount = *p.Discount
		}

		custPrice := listPrice.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2)
		extPrice := custPrice.Mul(decimal.NewFromInt(li.Quantity)).Round(2)
		// Incremental rounding: the subtotal sums the rounded extended
		// prices, matching the documents customers already have.
		subtotal = subtotal.Add(extPrice)

		deviceRole := p.DeviceRole
		if deviceRole == "" {
			deviceRole = "N/A"
		}

		rows = append(rows, []any{
			li.Key,
			p.Manufacturer,
			p.Description,
			deviceRole,
			li.Quantity,
			FormatCurrency(listPrice),
			FormatPercentage(discount),
			FormatCurrency(custPrice),
			FormatCurrency(extPrice),
		})
	}

	subtotalRow := spacerRow()
	subtotalRow[len(Columns)-2] = "Subtotal:"
	subtotalRow[len(Columns)-1] = FormatCurrency(subtotal)
	rows = append(rows, subtotalRow, spacerRow())

	return &render.Table{
		Title: fmt.Sprintf("Bill of Materials for %s", name),
		Rows:  rows,
	}, nil
}

func headerRow() []any {
	row := make([]any, len(Columns))
	for i, h := range Columns {
		row[i] = h
	}
	return row
}

func spacerRow() []any {
	row := make([]any, len(Columns))
	for i := range row {
		row[i] = ""
	}
	return row
}

// FormatCurrency renders a value as $#,##0.00.
func FormatCurrency(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercentage renders a decimal fraction as a percentage with no fixed
// number of decimal places: 0.1 -> "10%", 0.125 -> "12.5%".
func FormatPercentage(v decimal.Decimal) string {
	return v.Mul(decimal.NewFromInt(100)).String() + "%"
}
