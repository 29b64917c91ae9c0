package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"faktur/internal/core"
)

// Repository is the load/save boundary for the persisted invoice history.
// Implementations do whole-list reads and writes; there are no delta
// updates.
type Repository interface {
	// Load returns the persisted list. Missing or corrupt data reads as
	// an empty list, never as an error the caller must handle.
	Load() []core.InvoiceRecord

	// Save persists the full list.
	Save(records []core.InvoiceRecord) error
}

// FileRepository persists the history as a single JSON file.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Load() []core.InvoiceRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return []core.InvoiceRecord{}
	}
	var records []core.InvoiceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// Corrupt history is treated as empty state, never fatal.
		return []core.InvoiceRecord{}
	}
	return records
}

func (r *FileRepository) Save(records []core.InvoiceRecord) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// MemRepository holds the list in memory, for tests.
type MemRepository struct {
	records []core.InvoiceRecord
}

func (r *MemRepository) Load() []core.InvoiceRecord {
	return append([]core.InvoiceRecord(nil), r.records...)
}

func (r *MemRepository) Save(records []core.InvoiceRecord) error {
	r.records = append([]core.InvoiceRecord(nil), records...)
	return nil
}
