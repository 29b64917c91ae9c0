package services

import (
	"context"
	"fmt"
	"log/slog"

	"faktur/internal/amqp"
	"faktur/internal/store"
)

// CollectionService orchestrates collection writes across the primary store
// and the AMQP mirror pipeline.
type CollectionService struct {
	store      store.CollectionStore
	amqpClient *amqp.Client
}

func NewCollectionService(st store.CollectionStore, amqpClient *amqp.Client) *CollectionService {
	return &CollectionService{
		store:      st,
		amqpClient: amqpClient,
	}
}

// Put replaces a device's collection and publishes a mirror message
func (s *CollectionService) Put(ctx context.Context, col store.Collection) error {
	// Save to the primary store first (fast, reliable)
	if err := s.store.Put(ctx, col); err != nil {
		return fmt.Errorf("put collection: %w", err)
	}

	// Publish async mirror message (non-blocking)
	if err := s.publishUpdated(ctx, col); err != nil {
		slog.ErrorContext(ctx, "Failed to publish collection updated message",
			"device_id", col.DeviceID, "error", err)
		// Don't fail the request - collection is saved in the primary store
	}

	return nil
}

// Get returns a device's collection from the primary store
func (s *CollectionService) Get(ctx context.Context, deviceID string) (store.Collection, error) {
	col, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return store.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

func (s *CollectionService) publishUpdated(ctx context.Context, col store.Collection) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping mirror message")
		return nil
	}

	msg := amqp.NewCollectionUpdatedMessage(col.DeviceID, col.Invoices)
	return s.amqpClient.PublishCollectionUpdated(ctx, msg)
}

// Close closes the AMQP connection if one is configured
func (s *CollectionService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
