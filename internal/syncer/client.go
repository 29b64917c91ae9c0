package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"faktur/internal/core"
)

// Client talks to the remote collection endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given API base ("https://host/api").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type pushPayload struct {
	DeviceID string               `json:"deviceId"`
	Invoices []core.InvoiceRecord `json:"invoices"`
}

type pullPayload struct {
	DeviceID string               `json:"deviceId"`
	Invoices []core.InvoiceRecord `json:"invoices"`
}

// Push replaces the remote collection for the device with the given list.
func (c *Client) Push(ctx context.Context, deviceID string, records []core.InvoiceRecord) error {
	if records == nil {
		records = []core.InvoiceRecord{}
	}
	body, err := json.Marshal(pushPayload{DeviceID: deviceID, Invoices: records})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoices", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push collection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push collection: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Pull fetches the remote collection for the device. An unseen device
// yields an empty list, not an error.
func (c *Client) Pull(ctx context.Context, deviceID string) ([]core.InvoiceRecord, error) {
	u := c.baseURL + "/invoices?device=" + url.QueryEscape(deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build pull request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull collection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pull collection: unexpected status %d", resp.StatusCode)
	}

	var payload pullPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode pull response: %w", err)
	}
	if payload.Invoices == nil {
		payload.Invoices = []core.InvoiceRecord{}
	}
	return payload.Invoices, nil
}
