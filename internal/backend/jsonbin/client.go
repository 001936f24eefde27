// Package jsonbin implements service.DocumentStore on a hosted JSON bin.
package jsonbin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tasktracker/internal/backend/httpapi"
	"tasktracker/internal/service"
)

const (
	// DefaultBaseURL is the bins endpoint of the hosted store.
	DefaultBaseURL = "https://api.jsonbin.io/v3/b"

	// MasterKeyHeader carries the static secret.
	MasterKeyHeader = "X-Master-Key"
)

// Client implements service.DocumentStore.
type Client struct {
	sender httpapi.Sender
	binID  string
}

// New creates a store client for the bin identified by binID.
func New(baseURL, masterKey, binID string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	header := http.Header{}
	header.Set(MasterKeyHeader, masterKey)
	return &Client{
		sender: httpapi.New(baseURL, header, nil, timeout),
		binID:  binID,
	}
}

// NewWithSender creates a client over an existing sender (for testing).
func NewWithSender(sender httpapi.Sender, binID string) *Client {
	return &Client{sender: sender, binID: binID}
}

type latestResponse struct {
	Record []service.Task `json:"record"`
}

// FetchLatest returns the tasks stored in the latest version of the bin.
func (c *Client) FetchLatest(ctx context.Context) ([]service.Task, error) {
	raw, err := c.sender.Send(ctx, http.MethodGet, c.binID+"/latest", nil)
	if err != nil {
		return nil, &service.StoreError{Op: "fetch", Err: err}
	}
	if raw == nil {
		return nil, &service.StoreError{Op: "fetch", Err: fmt.Errorf("empty response body")}
	}

	var resp latestResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &service.StoreError{Op: "fetch", Err: fmt.Errorf("malformed record: %w", err)}
	}
	if resp.Record == nil {
		return []service.Task{}, nil
	}
	return resp.Record, nil
}

// ReplaceAll overwrites the bin with tasks.
func (c *Client) ReplaceAll(ctx context.Context, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	if _, err := c.sender.Send(ctx, http.MethodPut, c.binID, tasks); err != nil {
		return &service.StoreError{Op: "replace", Err: err}
	}
	return nil
}
