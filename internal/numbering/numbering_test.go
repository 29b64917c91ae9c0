package numbering

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPeekFreezes(t *testing.T) {
	g := NewGenerator(NewMemCounterStore(1))
	first := g.Peek()
	second := g.Peek()
	if first != second {
		t.Fatalf("peek must return the identical frozen number: %q != %q", first, second)
	}
}

func TestPeekFrozenAcrossDateBoundary(t *testing.T) {
	now := time.Date(2025, 9, 1, 23, 59, 0, 0, time.UTC)
	clock := now
	g := NewGenerator(NewMemCounterStore(1), WithClock(func() time.Time { return clock }))

	first := g.Peek()
	clock = now.Add(2 * time.Minute) // midnight crossed
	if got := g.Peek(); got != first {
		t.Fatalf("frozen number changed across date boundary: %q != %q", got, first)
	}
}

func TestFinalizeAdvancesCounter(t *testing.T) {
	store := NewMemCounterStore(7)
	g := NewGenerator(store, WithClock(fixedClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))))

	first := g.Peek()
	if !strings.HasSuffix(first, "-007") {
		t.Fatalf("expected counter suffix 007, got %q", first)
	}
	if err := g.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	next := g.Peek()
	if !strings.HasSuffix(next, "-008") {
		t.Fatalf("expected counter suffix 008 after finalize, got %q", next)
	}
	if next == first {
		t.Fatalf("finalize must clear the frozen number")
	}
}

func TestFinalizeIdempotentWhenUnset(t *testing.T) {
	store := NewMemCounterStore(3)
	g := NewGenerator(store)
	// Nothing frozen: no-op, counter untouched.
	if err := g.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if store.Load() != 3 {
		t.Fatalf("counter must not advance without a frozen number, got %d", store.Load())
	}
}

func TestCounterSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter")

	store := NewFileCounterStore(path)
	g := NewGenerator(store)
	g.Peek()
	if err := g.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	// Simulated restart: a fresh store reading the same file.
	reloaded := NewFileCounterStore(path)
	if got := reloaded.Load(); got != 2 {
		t.Fatalf("expected persisted counter 2 after restart, got %d", got)
	}
}

func TestFileCounterStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter")
	store := NewFileCounterStore(path)

	if got := store.Load(); got != 1 {
		t.Fatalf("missing counter must read as 1, got %d", got)
	}

	if err := store.Save(5); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := store.Load(); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestDateCodeFormat(t *testing.T) {
	// 2025-09-01 is 1404/06/10 in the Persian calendar.
	when := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	if got := (PersianCoder{}).DateCode(when); got != "040610" {
		t.Fatalf("persian date code: expected 040610, got %q", got)
	}
	if got := (GregorianCoder{}).DateCode(when); got != "250901" {
		t.Fatalf("gregorian date code: expected 250901, got %q", got)
	}
}

func TestNumberShape(t *testing.T) {
	g := NewGenerator(NewMemCounterStore(12), WithDateCoder(GregorianCoder{}),
		WithClock(fixedClock(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))))
	if got := g.Peek(); got != "250102-012" {
		t.Fatalf("expected 250102-012, got %q", got)
	}
}
