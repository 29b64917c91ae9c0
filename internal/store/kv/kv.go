// Package kv is the key-value shape of the collection store: one opaque
// blob per device id, held in memory with optional JSON-file persistence.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"faktur/internal/core"
	"faktur/internal/store"
)

// Store keeps one collection blob per device id.
type Store struct {
	mu   sync.Mutex
	data map[string]store.Collection
	dir  string // empty means memory-only
	now  func() time.Time
}

// New returns a memory-only store.
func New() *Store {
	return &Store{
		data: make(map[string]store.Collection),
		now:  time.Now,
	}
}

// NewFromDir returns a store that persists each collection as one JSON
// file under dir, seeding from files already present. Unreadable or
// corrupt files are skipped, never fatal.
func NewFromDir(dir string) *Store {
	s := New()
	s.dir = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		return s
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var col store.Collection
		if err := json.Unmarshal(data, &col); err != nil || col.DeviceID == "" {
			continue
		}
		s.data[col.DeviceID] = col
	}
	return s
}

func (s *Store) Get(_ context.Context, deviceID string) (store.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.data[deviceID]
	if !ok {
		return store.Collection{DeviceID: deviceID, Invoices: []core.InvoiceRecord{}}, nil
	}
	col.Invoices = append([]core.InvoiceRecord(nil), col.Invoices...)
	return col, nil
}

func (s *Store) Put(_ context.Context, col store.Collection) error {
	if col.DeviceID == "" {
		return fmt.Errorf("put collection: empty device id")
	}
	if col.Invoices == nil {
		col.Invoices = []core.InvoiceRecord{}
	}
	col.LastSync = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[col.DeviceID] = col

	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create kv directory: %w", err)
	}
	data, err := json.Marshal(col)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	path := filepath.Join(s.dir, sanitizeName(col.DeviceID)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write collection file: %w", err)
	}
	return nil
}

// sanitizeName keeps device-id-derived filenames inside the data dir.
func sanitizeName(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
