// Package sqlite is the relational shape of the collection store: one row
// per invoice record, upserted by record id with a server-assigned
// updated_at. Queryable columns are kept alongside a full JSON payload so
// a materialized collection round-trips losslessly.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"faktur/internal/core"
	"faktur/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put upserts every record of the collection keyed by record id and stamps
// the device's last sync time. Records absent from the incoming list are
// left in place; the relational shape accumulates rather than deletes.
func (s *Store) Put(ctx context.Context, col store.Collection) error {
	if col.DeviceID == "" {
		return fmt.Errorf("put collection: empty device id")
	}
	lastSync := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range col.Invoices {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", r.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoices (
				id, device_id, number, date, date_unix_ms, persian_date,
				company_name, customer_name, subtotal, total_discount, tax,
				grand_total, services_count, notes, has_pdf, payload, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				device_id=excluded.device_id,
				number=excluded.number,
				date=excluded.date,
				date_unix_ms=excluded.date_unix_ms,
				persian_date=excluded.persian_date,
				company_name=excluded.company_name,
				customer_name=excluded.customer_name,
				subtotal=excluded.subtotal,
				total_discount=excluded.total_discount,
				tax=excluded.tax,
				grand_total=excluded.grand_total,
				services_count=excluded.services_count,
				notes=excluded.notes,
				has_pdf=excluded.has_pdf,
				payload=excluded.payload,
				updated_at=excluded.updated_at`,
			r.ID, col.DeviceID, r.Number, r.Date.UTC().Format(time.RFC3339Nano),
			r.Date.UnixMilli(), r.PersianDate, r.CompanyInfo["name"], r.CustomerInfo["name"],
			r.Subtotal.String(), r.TotalDiscount.String(), r.Tax.String(),
			r.GrandTotal.String(), len(r.Services), r.Notes, boolToInt(r.HasPDF),
			string(payload), lastSync.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("upsert record %s: %w", r.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO device_sync (device_id, last_sync) VALUES (?, ?)
		ON CONFLICT(device_id) DO UPDATE SET last_sync=excluded.last_sync`,
		col.DeviceID, lastSync.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("stamp last sync: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit collection: %w", err)
	}
	return nil
}

// Get materializes the collection for a device, newest first, capped at
// the client retention limit.
func (s *Store) Get(ctx context.Context, deviceID string) (store.Collection, error) {
	col := store.Collection{DeviceID: deviceID, Invoices: []core.InvoiceRecord{}}

	// RFC3339Nano text misorders whole-second vs fractional timestamps,
	// so ordering uses the epoch-millis column.
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM invoices
		WHERE device_id = ?
		ORDER BY date_unix_ms DESC
		LIMIT 1000`, deviceID)
	if err != nil {
		return col, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return col, fmt.Errorf("scan invoice row: %w", err)
		}
		var r core.InvoiceRecord
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			// A single undecodable row must not poison the collection.
			continue
		}
		col.Invoices = append(col.Invoices, r)
	}
	if err := rows.Err(); err != nil {
		return col, fmt.Errorf("iterate invoice rows: %w", err)
	}

	var lastSync string
	err = s.db.QueryRowContext(ctx,
		`SELECT last_sync FROM device_sync WHERE device_id = ?`, deviceID).Scan(&lastSync)
	switch {
	case err == sql.ErrNoRows:
		// Unseen device: empty collection, zero LastSync.
	case err != nil:
		return col, fmt.Errorf("query last sync: %w", err)
	default:
		if t, perr := time.Parse(time.RFC3339Nano, lastSync); perr == nil {
			col.LastSync = t
		}
	}

	return col, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
