// Package reconcile merges the local invoice history with a remote copy.
//
// Conflict resolution is last-write-wins on the wall-clock timestamp
// embedded in each record, with local preferred on ties. This is vulnerable
// to clock skew across devices: a genuinely newer edit from a device with
// a slow clock can lose. Known inherited limitation; changing the conflict
// semantics (vector clocks, server sequence numbers) is a product decision.
package reconcile

import (
	"sort"

	"faktur/internal/core"
)

// Merge combines local and remote record lists into one canonical list.
//
// The map is seeded from local; a remote record is inserted when its id is
// unseen and replaces the local copy only when its date is strictly later.
// The result is sorted by date descending. Merge is pure; persisting the
// result is the caller's responsibility, done once after the merge.
func Merge(local, remote []core.InvoiceRecord) []core.InvoiceRecord {
	byID := make(map[string]core.InvoiceRecord, len(local)+len(remote))
	for _, r := range local {
		byID[r.ID] = r
	}
	for _, r := range remote {
		existing, ok := byID[r.ID]
		if !ok || r.Date.After(existing.Date) {
			byID[r.ID] = r
		}
	}

	merged := make([]core.InvoiceRecord, 0, len(byID))
	for _, r := range byID {
		merged = append(merged, r)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	return merged
}
