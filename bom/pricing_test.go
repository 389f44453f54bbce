package bom

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/FreshSupaSulley/ABC/catalog"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return &d
}

func testCatalog(t *testing.T) *catalog.InMemory {
	t.Helper()
	c := catalog.NewInMemory()
	products := []*catalog.Product{
		{
			Part:         "SW-100",
			Manufacturer: "Cisco",
			Description:  "48-port switch",
			DeviceRole:   "access switch",
			ListPrice:    dec(t, "100.00"),
			Discount:     dec(t, "0.10"),
		},
		{
			Part:         "P1",
			Manufacturer: "Arista",
			Description:  "Spine switch",
			ListPrice:    dec(t, "50.00"),
			Discount:     dec(t, "0"),
		},
		{
			Part:         "FREEBIE",
			Manufacturer: "Generic",
			Description:  "No list price on record",
		},
	}
	for _, p := range products {
		if err := c.Add(p); err != nil {
			t.Fatalf("catalog.Add() failed: %v", err)
		}
	}
	return c
}

func TestPriceComputesCustomerAndExtendedPrice(t *testing.T) {
	items := []*LineItem{{Key: "SW-100", Quantity: 3}}

	table, err := Price("campus", items, testCatalog(t), true)
	if err != nil {
		t.Fatalf("Price() failed: %v", err)
	}

	// header, spacer, one product row, subtotal, spacer
	if len(table.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(table.Rows))
	}

	row := table.Rows[2]
	want := []any{"SW-100", "Cisco", "48-port switch", "access switch", int64(3), "$100.00", "10%", "$90.00", "$270.00"}
	for i, cell := range want {
		if row[i] != cell {
			t.Errorf("row[%d] = %v, want %v", i, row[i], cell)
		}
	}

	subtotal := table.Rows[3]
	if subtotal[len(Columns)-2] != "Subtotal:" || subtotal[len(Columns)-1] != "$270.00" {
		t.Errorf("subtotal row = %v", subtotal)
	}
}

func TestPriceSubtotalSumsRoundedExtendedPrices(t *testing.T) {
	items := []*LineItem{
		{Key: "SW-100", Quantity: 1},
		{Key: "P1", Quantity: 2},
	}

	table, err := Price("campus", items, testCatalog(t), true)
	if err != nil {
		t.Fatalf("Price() failed: %v", err)
	}
	subtotal := table.Rows[len(table.Rows)-2]
	if subtotal[len(Columns)-1] != "$190.00" {
		t.Errorf("subtotal = %v, want $190.00", subtotal[len(Columns)-1])
	}
}

func TestPriceMissingListPriceRendersZero(t *testing.T) {
	items := []*LineItem{{Key: "FREEBIE", Quantity: 4}}

	table, err := Price("campus", items, testCatalog(t), true)
	if err != nil {
		t.Fatalf("Price() failed: %v", err)
	}
	row := table.Rows[2]
	if row[3] != "N/A" {
		t.Errorf("device role = %v, want N/A", row[3])
	}
	for _, i := range []int{5, 7, 8} {
		if row[i] != "$0.00" {
			t.Errorf("row[%d] = %v, want $0.00", i, row[i])
		}
	}
	if row[6] != "0%" {
		t.Errorf("discount = %v, want 0%%", row[6])
	}
}

func TestPriceRawRowsPassThrough(t *testing.T) {
	items := []*LineItem{
		{Key: "raw-1", Raw: []any{"A", "B", "C"}},
		{Key: "P1", Quantity: 1},
	}

	table, err := Price("campus", items, testCatalog(t), true)
	if err != nil {
		t.Fatalf("Price() failed: %v", err)
	}

	raw := table.Rows[2]
	if len(raw) != 3 || raw[0] != "A" || raw[2] != "C" {
		t.Errorf("raw row = %v", raw)
	}
	if table.Rows[3][0] != "P1" {
		t.Errorf("product row = %v", table.Rows[3])
	}
	// Raw rows don't contribute to the subtotal.
	if got := table.Rows[4][len(Columns)-1]; got != "$50.00" {
		t.Errorf("subtotal = %v, want $50.00", got)
	}
}

func TestPriceEmptyPolicy(t *testing.T) {
	// A save-time dry run tolerates an empty BOM.
	if _, err := Price("campus", nil, testCatalog(t), false); err != nil {
		t.Errorf("dry run rejected an empty BOM: %v", err)
	}

	// A real document request does not.
	_, err := Price("campus", nil, testCatalog(t), true)
	if KindOf(err) != KindEmptyBOM {
		t.Errorf("err = %v, want an empty BOM error", err)
	}

	// Raw rows count toward non-emptiness.
	items := []*LineItem{{Key: "raw-1", Raw: []any{"A"}}}
	if _, err := Price("campus", items, testCatalog(t), true); err != nil {
		t.Errorf("raw-only BOM rejected: %v", err)
	}
}

func TestPriceUnknownProduct(t *testing.T) {
	items := []*LineItem{{Key: "NOPE", Quantity: 1}}
	_, err := Price("campus", items, testCatalog(t), true)
	if KindOf(err) != KindUnknownProduct {
		t.Errorf("err = %v, want an unknown product error", err)
	}
}

func TestFormatCurrency(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"90", "$90.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.89", "$1,234,567.89"},
		{"-1234.5", "-$1,234.50"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
	}

	for _, tc := range testCases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", tc.in, err)
		}
		if got := FormatCurrency(d); got != tc.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"0", "0%"},
		{"0.1", "10%"},
		{"0.125", "12.5%"},
		{"1", "100%"},
		{"0.3333", "33.33%"},
	}

	for _, tc := range testCases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", tc.in, err)
		}
		if got := FormatPercentage(d); got != tc.want {
			t.Errorf("FormatPercentage(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
