// Package core holds the invoice domain types and the money engine.
//
// All arithmetic is done in decimal and kept unrounded; rounding happens
// only at display time via FormatAmount, so repeated recomputation never
// compounds rounding error.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is the fixed tax applied to the taxable amount (10%).
var TaxRate = decimal.New(1, -1)

// Totals is the aggregate result of the invoice arithmetic pipeline.
type Totals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxableAmount decimal.Decimal
	Tax           decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ComputeTotals runs the full pipeline over the given lines:
//
//	subtotal      = sum of line totals
//	totalDiscount = subtotal * totalDiscountPercent / 100
//	taxable       = subtotal - totalDiscount
//	tax           = taxable * TaxRate
//	grandTotal    = taxable + tax
//
// It is a pure function of its inputs. An empty line list yields all zeros.
// Line-level validation is the caller's responsibility.
func ComputeTotals(lines []ServiceLine, totalDiscountPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}

	totalDiscount := subtotal.Mul(totalDiscountPercent).Div(hundred)
	taxable := subtotal.Sub(totalDiscount)
	tax := taxable.Mul(TaxRate)

	return Totals{
		Subtotal:      subtotal,
		TotalDiscount: totalDiscount,
		TaxableAmount: taxable,
		Tax:           tax,
		GrandTotal:    taxable.Add(tax),
	}
}

// Snapshot fills an InvoiceRecord's monetary fields from the totals.
func (t Totals) Snapshot(r *InvoiceRecord) {
	r.Subtotal = t.Subtotal
	r.TotalDiscount = t.TotalDiscount
	r.Tax = t.Tax
	r.GrandTotal = t.GrandTotal
}

// FormatAmount renders an amount for display: rounded to the nearest whole
// unit with thousands separators ("1234567.8" -> "1,234,568").
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(0).String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
