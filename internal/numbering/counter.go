package numbering

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CounterStore persists the monotonic invoice counter across restarts.
// The counter is scoped per installation, not global.
type CounterStore interface {
	// Load returns the counter to use for the next invoice number.
	// A missing or unreadable counter reads as 1, never as an error
	// the caller has to handle.
	Load() int

	// Save persists the counter value.
	Save(n int) error
}

// FileCounterStore keeps the counter in a small text file.
type FileCounterStore struct {
	path string
}

func NewFileCounterStore(path string) *FileCounterStore {
	return &FileCounterStore{path: path}
}

func (s *FileCounterStore) Load() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 1 {
		// Corrupt counter file reads as the initial value.
		return 1
	}
	return n
}

func (s *FileCounterStore) Save(n int) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create counter directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(n)), 0644); err != nil {
		return fmt.Errorf("write counter file: %w", err)
	}
	return nil
}

// MemCounterStore is an in-memory store for tests and ephemeral sessions.
type MemCounterStore struct {
	n int
}

func NewMemCounterStore(n int) *MemCounterStore {
	if n < 1 {
		n = 1
	}
	return &MemCounterStore{n: n}
}

func (s *MemCounterStore) Load() int        { return s.n }
func (s *MemCounterStore) Save(n int) error { s.n = n; return nil }
