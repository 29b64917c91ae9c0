package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"faktur/internal/core"
	"faktur/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "faktur.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func rec(id, date string) core.InvoiceRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return core.InvoiceRecord{
		ID:         id,
		Number:     "040101-001",
		Date:       d,
		GrandTotal: decimal.RequireFromString("2425.5"),
		CompanyInfo: map[string]string{
			"name":  "Acme",
			"phone": "021-555",
		},
	}
}

func TestGetUnseenDevice(t *testing.T) {
	s := newTestStore(t)
	col, err := s.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(col.Invoices) != 0 || !col.LastSync.IsZero() {
		t.Fatalf("expected empty collection, got %+v", col)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := store.Collection{DeviceID: "d1", Invoices: []core.InvoiceRecord{rec("a", "2024-01-01")}}
	if err := s.Put(ctx, in); err != nil {
		t.Fatalf("put: %v", err)
	}

	col, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(col.Invoices) != 1 {
		t.Fatalf("expected 1 record, got %d", len(col.Invoices))
	}
	got := col.Invoices[0]
	if got.ID != "a" || !got.GrandTotal.Equal(decimal.RequireFromString("2425.5")) {
		t.Fatalf("record did not round-trip: %+v", got)
	}
	// Flat maps survive via the payload column.
	if got.CompanyInfo["phone"] != "021-555" {
		t.Fatalf("company info lost: %+v", got.CompanyInfo)
	}
	if col.LastSync.IsZero() {
		t.Fatalf("put must stamp last sync")
	}
}

func TestPutUpsertsByRecordID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := rec("a", "2024-01-01")
	if err := s.Put(ctx, store.Collection{DeviceID: "d1", Invoices: []core.InvoiceRecord{first}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	updated := rec("a", "2024-01-02")
	updated.HasPDF = true
	if err := s.Put(ctx, store.Collection{DeviceID: "d1", Invoices: []core.InvoiceRecord{updated}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	col, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(col.Invoices) != 1 || !col.Invoices[0].HasPDF {
		t.Fatalf("expected single upserted record, got %+v", col.Invoices)
	}
}

func TestRecordsAccumulateAcrossPuts(t *testing.T) {
	// The relational shape upserts rather than deletes: records missing
	// from a later put stay in place.
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, store.Collection{DeviceID: "d1", Invoices: []core.InvoiceRecord{rec("a", "2024-01-01")}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, store.Collection{DeviceID: "d1", Invoices: []core.InvoiceRecord{rec("b", "2024-02-01")}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	col, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(col.Invoices) != 2 {
		t.Fatalf("expected 2 records, got %d", len(col.Invoices))
	}
	// Ordered by date descending.
	if col.Invoices[0].ID != "b" {
		t.Fatalf("expected newest first, got %s", col.Invoices[0].ID)
	}
}

func TestOrderingAtSubSecondGranularity(t *testing.T) {
	// Text timestamps sort "00Z" after "00.5Z"; the epoch-millis column
	// must keep the genuinely later record first.
	s := newTestStore(t)
	ctx := context.Background()

	whole := rec("whole", "2024-01-01")
	whole.Date = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fractional := rec("fractional", "2024-01-01")
	fractional.Date = time.Date(2024, 1, 1, 12, 0, 0, 500_000_000, time.UTC)

	in := store.Collection{DeviceID: "d1", Invoices: []core.InvoiceRecord{whole, fractional}}
	if err := s.Put(ctx, in); err != nil {
		t.Fatalf("put: %v", err)
	}

	col, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(col.Invoices) != 2 {
		t.Fatalf("expected 2 records, got %d", len(col.Invoices))
	}
	if col.Invoices[0].ID != "fractional" {
		t.Fatalf("expected the later fractional-second record first, got %s", col.Invoices[0].ID)
	}
}

func TestDevicesAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, store.Collection{DeviceID: "d1", Invoices: []core.InvoiceRecord{rec("a", "2024-01-01")}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	col, err := s.Get(ctx, "d2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(col.Invoices) != 0 {
		t.Fatalf("device d2 must not see d1 records")
	}
}
