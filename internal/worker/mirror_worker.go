package worker

import (
	"context"
	"fmt"
	"log/slog"

	"faktur/internal/amqp"
	"faktur/internal/store"
)

// MirrorWorker copies device collections from AMQP messages into a durable
// SQLite mirror. The mirror accumulates records across overwrites, so it also
// serves as an audit trail of everything a device ever pushed.
type MirrorWorker struct {
	mirror store.CollectionStore
}

func NewMirrorWorker(mirror store.CollectionStore) *MirrorWorker {
	return &MirrorWorker{mirror: mirror}
}

// HandleCollectionMessage processes a single collection-updated message
func (w *MirrorWorker) HandleCollectionMessage(ctx context.Context, msg *amqp.CollectionUpdatedMessage) error {
	slog.InfoContext(ctx, "Processing collection updated message",
		"device_id", msg.DeviceID,
		"records", len(msg.Invoices))

	if msg.DeviceID == "" {
		return fmt.Errorf("message has empty device id")
	}

	col := store.Collection{
		DeviceID: msg.DeviceID,
		Invoices: msg.Invoices,
		LastSync: msg.Timestamp,
	}

	if err := w.mirror.Put(ctx, col); err != nil {
		return fmt.Errorf("mirror collection: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored collection",
		"device_id", msg.DeviceID,
		"records", len(msg.Invoices))

	return nil
}
