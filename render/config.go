// Package render turns a finished BOM table into output documents: a
// spreadsheet workbook and a paginated PDF whose page size is derived from
// the table's own column metrics.
package render

import "time"

// Config holds every knob the renderer reads. There is no package-level
// mutable state; callers pass a Config (usually DefaultConfig) explicitly.
type Config struct {
	// FontFamily must be a core PDF font family.
	FontFamily string
	// FontSize in points.
	FontSize float64

	// CharScale is the width of one character as a fraction of the font
	// size when converting column character counts to points.
	CharScale float64
	// ColPadding is the number of extra characters added to each PDF
	// column width.
	ColPadding int
	// SheetPadding is the number of extra characters added to each
	// spreadsheet column width.
	SheetPadding int
	// LineSpacing multiplies the font size to obtain the logical row
	// height.
	LineSpacing float64

	// Disclaimer is printed at the bottom of the PDF, outside the grid.
	Disclaimer string

	// Timestamp is the fixed document creation time stamped into both
	// artifacts so identical inputs produce byte-identical output.
	Timestamp time.Time
}

// DefaultConfig returns the production rendering configuration.
func DefaultConfig() Config {
	return Config{
		FontFamily:   "Helvetica",
		FontSize:     20,
		CharScale:    0.6,
		ColPadding:   5,
		SheetPadding: 2,
		LineSpacing:  1.5,
		Disclaimer:   "*Prices listed are estimates and may vary",
		Timestamp:    time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// rowHeight is the physical row height in points. The 4/3 factor converts
// the font's pixel-based line box to points.
func (c Config) rowHeight() float64 {
	return c.FontSize * c.LineSpacing * (4.0 / 3.0)
}

// colWidth converts a column's character count to points.
func (c Config) colWidth(chars int) float64 {
	return float64(chars+c.ColPadding) * c.FontSize * c.CharScale
}
