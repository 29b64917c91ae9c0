package amqp

import (
	"testing"
	"time"

	"faktur/internal/core"

	"github.com/shopspring/decimal"
)

func TestCollectionUpdatedMessageRoundTrip(t *testing.T) {
	rec := core.InvoiceRecord{
		ID:         "inv_abc_12345678",
		Number:     "040610-007",
		Date:       time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		GrandTotal: decimal.RequireFromString("2425.5"),
	}
	msg := NewCollectionUpdatedMessage("device_x", []core.InvoiceRecord{rec})

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := CollectionUpdatedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.DeviceID != "device_x" {
		t.Errorf("device id = %q, want device_x", got.DeviceID)
	}
	if len(got.Invoices) != 1 {
		t.Fatalf("invoices = %d, want 1", len(got.Invoices))
	}
	if got.Invoices[0].Number != "040610-007" {
		t.Errorf("number = %q", got.Invoices[0].Number)
	}
	if !got.Invoices[0].GrandTotal.Equal(rec.GrandTotal) {
		t.Errorf("grand total = %s, want %s", got.Invoices[0].GrandTotal, rec.GrandTotal)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestCollectionUpdatedMessageFromInvalidJSON(t *testing.T) {
	if _, err := CollectionUpdatedMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
