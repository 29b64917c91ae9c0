package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"faktur/internal/core"
)

// maxBodySize caps push payloads; a full collection of 1000 records stays
// well under this.
const maxBodySize = 10 << 20 // 10 MiB

// ErrInvalidData marks push payloads missing a device id or carrying a
// non-list invoices field.
var ErrInvalidData = errors.New("invalid data")

// PushRequest is the decoded body of a collection push.
type PushRequest struct {
	DeviceID string
	Invoices []core.InvoiceRecord
}

// ParsePushRequest reads and validates a push payload. Any shape violation
// maps to ErrInvalidData so handlers answer with a single client error.
func ParsePushRequest(r *http.Request) (*PushRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err != nil {
		return nil, ErrInvalidData
	}

	var envelope struct {
		DeviceID string          `json:"deviceId"`
		Invoices json.RawMessage `json:"invoices"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ErrInvalidData
	}

	if strings.TrimSpace(envelope.DeviceID) == "" {
		return nil, ErrInvalidData
	}

	// invoices must be a JSON array; anything else is a malformed push
	raw := bytes.TrimSpace(envelope.Invoices)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidData
	}

	var invoices []core.InvoiceRecord
	if err := json.Unmarshal(raw, &invoices); err != nil {
		return nil, ErrInvalidData
	}

	return &PushRequest{
		DeviceID: envelope.DeviceID,
		Invoices: invoices,
	}, nil
}

// ParseDeviceParam extracts the device query parameter from a pull request.
func ParseDeviceParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("device"))
}
