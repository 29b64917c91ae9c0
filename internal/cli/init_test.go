package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"faktur/internal/config"
	"faktur/internal/core"
)

func TestInitNumberingUsesCounterFile(t *testing.T) {
	counterPath := filepath.Join(t.TempDir(), "counter")
	if err := os.WriteFile(counterPath, []byte("42"), 0644); err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	g := InitNumbering(&config.Config{CounterFile: counterPath})
	if got := g.Peek(); !strings.HasSuffix(got, "-042") {
		t.Fatalf("expected counter suffix 042, got %q", got)
	}
}

func TestInitNumberingFinalizePersists(t *testing.T) {
	counterPath := filepath.Join(t.TempDir(), "counter")
	cfg := &config.Config{CounterFile: counterPath}

	g := InitNumbering(cfg)
	g.Peek()
	if err := g.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	// A fresh generator on the same config sees the advanced counter.
	if got := InitNumbering(cfg).Peek(); !strings.HasSuffix(got, "-002") {
		t.Fatalf("expected counter suffix 002 after finalize, got %q", got)
	}
}

func TestInitHistoryUsesHistoryFile(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history.json")
	cfg := &config.Config{HistoryFile: historyPath}

	s := InitHistory(cfg)
	rec := core.InvoiceRecord{ID: "inv_1", Number: "040101-001", Date: time.Now()}
	if err := s.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	reopened := InitHistory(cfg)
	if got := reopened.List(); len(got) != 1 || got[0].ID != "inv_1" {
		t.Fatalf("history did not persist across stores: %+v", got)
	}
}
