// Package httpapi implements the JSON-over-HTTP request path shared by the
// remote store and completion backends.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// DefaultTimeout bounds a single Send call when Client.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Sender is the capability backends are built on.
type Sender interface {
	Send(ctx context.Context, method, path string, payload any) (json.RawMessage, error)
}

// Client sends JSON requests relative to a base URL with a fixed set of headers.
type Client struct {
	BaseURL string
	Header  http.Header
	HTTP    *http.Client
	Timeout time.Duration
}

// New creates a Client. A nil httpClient uses http.DefaultClient.
func New(baseURL string, header http.Header, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Header:  header,
		HTTP:    httpClient,
		Timeout: timeout,
	}
}

// Send issues method against BaseURL/path. A non-nil payload is sent as
// the JSON body. The decoded response body is returned as raw JSON.
// Non-2xx responses yield a *googleapi.Error.
func (c *Client) Send(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	url := strings.TrimRight(c.BaseURL+"/"+strings.TrimLeft(path, "/"), "/")

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, wrapError(err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("malformed JSON response from %s %s", method, url)
	}
	return json.RawMessage(data), nil
}

// StatusCode returns the HTTP status carried by err, or 0 if err did not
// come from a non-2xx response.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// wrapError gives transport failures a readable message.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}
