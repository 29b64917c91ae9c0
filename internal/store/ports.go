// Package store defines the server-side collection persistence port.
//
// A collection is the full list of invoice records for one device id.
// Puts are whole-collection overwrites stamped with a server-side sync
// time; there are no partial writes, so an interrupted client leaves no
// inconsistent remote state behind.
package store

import (
	"context"
	"time"

	"faktur/internal/core"
)

// Collection is the remote copy of one device's invoice history.
type Collection struct {
	DeviceID string               `json:"deviceId"`
	Invoices []core.InvoiceRecord `json:"invoices"`
	LastSync time.Time            `json:"lastSync"`
}

// CollectionStore is implemented by the kv and sqlite backends. Both
// materialize the same record list, so the client-side reconciler works
// identically against either.
type CollectionStore interface {
	// Get returns the stored collection. An unseen device id yields an
	// empty collection, not an error.
	Get(ctx context.Context, deviceID string) (Collection, error)

	// Put replaces the stored collection for its device id and stamps
	// LastSync.
	Put(ctx context.Context, col Collection) error
}
