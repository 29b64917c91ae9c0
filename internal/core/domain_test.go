package core

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestServiceLineValidate(t *testing.T) {
	good := ServiceLine{Name: "design", Quantity: 1, UnitPrice: dec("100"), DiscountPercent: decimal.Zero}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		line ServiceLine
		want error
	}{
		{"empty name", ServiceLine{Name: "  ", Quantity: 1, UnitPrice: dec("1")}, ErrEmptyName},
		{"zero quantity", ServiceLine{Name: "a", Quantity: 0, UnitPrice: dec("1")}, ErrInvalidQuantity},
		{"negative quantity", ServiceLine{Name: "a", Quantity: -2, UnitPrice: dec("1")}, ErrInvalidQuantity},
		{"negative price", ServiceLine{Name: "a", Quantity: 1, UnitPrice: dec("-1")}, ErrNegativePrice},
		{"discount over 100", ServiceLine{Name: "a", Quantity: 1, UnitPrice: dec("1"), DiscountPercent: dec("101")}, ErrInvalidDiscount},
		{"negative discount", ServiceLine{Name: "a", Quantity: 1, UnitPrice: dec("1"), DiscountPercent: dec("-5")}, ErrInvalidDiscount},
	}
	for _, tc := range cases {
		if err := tc.line.Validate(); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestInvoiceRecordValidate(t *testing.T) {
	good := InvoiceRecord{
		ID:     "inv_1",
		Number: "040627-001",
		Date:   time.Now(),
		Services: []ServiceLine{
			{Name: "svc", Quantity: 1, UnitPrice: dec("10")},
		},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	noNumber := good
	noNumber.Number = ""
	if err := noNumber.Validate(); err != ErrEmptyNumber {
		t.Fatalf("expected ErrEmptyNumber, got %v", err)
	}

	badLine := good
	badLine.Services = []ServiceLine{{Name: "", Quantity: 1}}
	if err := badLine.Validate(); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestNewRecordID(t *testing.T) {
	now := time.Now()
	a := NewRecordID(now)
	b := NewRecordID(now)
	if !strings.HasPrefix(a, "inv_") {
		t.Fatalf("unexpected id format: %s", a)
	}
	if a == b {
		t.Fatalf("ids generated at the same instant must still differ")
	}
}

func TestComputeStats(t *testing.T) {
	records := []InvoiceRecord{
		{GrandTotal: dec("100"), HasPDF: true},
		{GrandTotal: dec("250.5")},
		{GrandTotal: dec("0")},
	}
	stats := ComputeStats(records)
	if stats.Count != 3 || stats.WithPDF != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if !stats.TotalRevenue.Equal(dec("350.5")) {
		t.Fatalf("expected revenue 350.5, got %s", stats.TotalRevenue)
	}
}
