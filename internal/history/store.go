// Package history is the local, append-only store of finalized invoices.
//
// The list is kept most-recent-first and capped; every mutation is followed
// by a whole-list persist. Two near-simultaneous writers on the same device
// can race and the last writer wins, which is acceptable for a single-user
// local store.
package history

import (
	"fmt"
	"sync"

	"faktur/internal/core"
)

// MaxRecords is the retention cap; insertions beyond it drop the oldest
// tail entries.
const MaxRecords = 1000

// Store holds the saved-invoice history backed by a Repository.
type Store struct {
	mu      sync.Mutex
	repo    Repository
	records []core.InvoiceRecord
}

func NewStore(repo Repository) *Store {
	return &Store{
		repo:    repo,
		records: repo.Load(),
	}
}

// Append inserts the record at the head of the list and persists.
func (s *Store) Append(record core.InvoiceRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]core.InvoiceRecord{record}, s.records...)
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	return s.persist()
}

// List returns a copy of the current history, most recent first.
func (s *Store) List() []core.InvoiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.InvoiceRecord(nil), s.records...)
}

// Remove deletes one record by id. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return s.persist()
}

// Clear empties the history.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = []core.InvoiceRecord{}
	return s.persist()
}

// MarkPDF flips a record's HasPDF flag to true on a later re-export.
// This is the only mutation allowed on a saved record.
func (s *Store) MarkPDF(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].HasPDF = true
			return s.persist()
		}
	}
	return fmt.Errorf("record %s not found", id)
}

// Replace swaps the whole history for the given list (capped), used after
// a remote merge. The merged list is persisted once.
func (s *Store) Replace(records []core.InvoiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]core.InvoiceRecord(nil), records...)
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	return s.persist()
}

func (s *Store) persist() error {
	if err := s.repo.Save(s.records); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}
