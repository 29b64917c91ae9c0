package amqp

import (
	"encoding/json"
	"time"

	"faktur/internal/core"
)

// CollectionUpdatedMessage announces that a device's remote collection was
// replaced. It carries the full record list so the mirror worker needs no
// access to the primary store; collection writes are whole-list overwrites
// anyway.
type CollectionUpdatedMessage struct {
	DeviceID  string               `json:"deviceId"`
	Invoices  []core.InvoiceRecord `json:"invoices"`
	Timestamp time.Time            `json:"timestamp"`
}

// NewCollectionUpdatedMessage creates a message for the given device and records
func NewCollectionUpdatedMessage(deviceID string, invoices []core.InvoiceRecord) *CollectionUpdatedMessage {
	return &CollectionUpdatedMessage{
		DeviceID:  deviceID,
		Invoices:  invoices,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *CollectionUpdatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CollectionUpdatedMessageFromJSON creates a message from JSON bytes
func CollectionUpdatedMessageFromJSON(data []byte) (*CollectionUpdatedMessage, error) {
	var msg CollectionUpdatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
