package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"faktur/internal/core"
	"faktur/internal/history"
	"faktur/internal/log"
)

type fakeRemote struct {
	mu       sync.Mutex
	records  []core.InvoiceRecord
	pullErr  error
	pushErr  error
	pushes   int
	lastPush []core.InvoiceRecord
}

func (f *fakeRemote) Push(_ context.Context, _ string, records []core.InvoiceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes++
	f.lastPush = append([]core.InvoiceRecord(nil), records...)
	if f.pushErr != nil {
		return f.pushErr
	}
	f.records = f.lastPush
	return nil
}

func (f *fakeRemote) Pull(_ context.Context, _ string) ([]core.InvoiceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	return append([]core.InvoiceRecord(nil), f.records...), nil
}

func testLogger() *log.Logger {
	return log.New(log.Config{})
}

func rec(id, date string) core.InvoiceRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return core.InvoiceRecord{ID: id, Number: "n-" + id, Date: d}
}

func TestLoadMergesAndPersists(t *testing.T) {
	store := history.NewStore(&history.MemRepository{})
	if err := store.Append(rec("local", "2024-02-01")); err != nil {
		t.Fatalf("append: %v", err)
	}
	remote := &fakeRemote{records: []core.InvoiceRecord{rec("remote", "2024-03-01")}}

	svc := NewService(store, remote, "device_x", testLogger())
	got := svc.Load(context.Background())

	if len(got) != 2 || got[0].ID != "remote" || got[1].ID != "local" {
		t.Fatalf("unexpected merge result: %+v", got)
	}
	// Merged list persisted to the local store.
	if persisted := store.List(); len(persisted) != 2 {
		t.Fatalf("expected merged list persisted, got %d records", len(persisted))
	}
}

func TestLoadFallsBackOnPullError(t *testing.T) {
	store := history.NewStore(&history.MemRepository{})
	if err := store.Append(rec("local", "2024-02-01")); err != nil {
		t.Fatalf("append: %v", err)
	}
	remote := &fakeRemote{pullErr: errors.New("unreachable")}

	svc := NewService(store, remote, "device_x", testLogger())
	got := svc.Load(context.Background())

	if len(got) != 1 || got[0].ID != "local" {
		t.Fatalf("expected fallback to local list, got %+v", got)
	}
}

func TestSaveLocalFirstThenPush(t *testing.T) {
	store := history.NewStore(&history.MemRepository{})
	remote := &fakeRemote{}
	svc := NewService(store, remote, "device_x", testLogger())

	if err := svc.Save(context.Background(), rec("a", "2024-01-01")); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Local write is visible immediately, before the push settles.
	if got := store.List(); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected record in local store, got %+v", got)
	}

	if !svc.WaitPush(2 * time.Second) {
		t.Fatalf("push was never dispatched")
	}
	remote.mu.Lock()
	defer remote.mu.Unlock()
	if remote.pushes != 1 || len(remote.lastPush) != 1 {
		t.Fatalf("expected one push with one record, got %d pushes", remote.pushes)
	}
}

func TestSavePushFailureDoesNotCorruptLocal(t *testing.T) {
	store := history.NewStore(&history.MemRepository{})
	remote := &fakeRemote{pushErr: errors.New("boom")}
	svc := NewService(store, remote, "device_x", testLogger())

	if err := svc.Save(context.Background(), rec("a", "2024-01-01")); err != nil {
		t.Fatalf("save must not fail on push error: %v", err)
	}
	if !svc.WaitPush(2 * time.Second) {
		t.Fatalf("push was never dispatched")
	}
	if got := store.List(); len(got) != 1 {
		t.Fatalf("local history must survive push failure, got %d records", len(got))
	}
}

func TestSaveRejectsInvalidWithoutPush(t *testing.T) {
	store := history.NewStore(&history.MemRepository{})
	remote := &fakeRemote{}
	svc := NewService(store, remote, "device_x", testLogger())

	bad := core.InvoiceRecord{ID: "x", Date: time.Now()} // missing number
	if err := svc.Save(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if svc.WaitPush(100 * time.Millisecond) {
		t.Fatalf("no push may be dispatched when the local write is rejected")
	}
}

func TestPushNow(t *testing.T) {
	store := history.NewStore(&history.MemRepository{})
	if err := store.Append(rec("a", "2024-01-01")); err != nil {
		t.Fatalf("append: %v", err)
	}
	remote := &fakeRemote{}
	svc := NewService(store, remote, "device_x", testLogger())

	if err := svc.PushNow(context.Background()); err != nil {
		t.Fatalf("push now: %v", err)
	}
	if remote.pushes != 1 {
		t.Fatalf("expected one push, got %d", remote.pushes)
	}
}
