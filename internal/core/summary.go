package core

import "github.com/shopspring/decimal"

// HistoryStats is a compact summary over a list of saved invoices,
// as shown on the history screen.
type HistoryStats struct {
	Count        int
	WithPDF      int
	TotalRevenue decimal.Decimal
}

// ComputeStats aggregates count, exported-PDF count and total revenue
// over the given records.
func ComputeStats(records []InvoiceRecord) HistoryStats {
	stats := HistoryStats{TotalRevenue: decimal.Zero}
	for _, r := range records {
		stats.Count++
		if r.HasPDF {
			stats.WithPDF++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(r.GrandTotal)
	}
	return stats
}
