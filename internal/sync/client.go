// ABOUTME: HTTP client for the remote sync peer.
// ABOUTME: Stateless per-request POST {endpoint}/sync with a shared secret.

package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// KeyHeader carries the opaque shared-secret credential.
const KeyHeader = "X-Sync-Key"

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// Exchanger performs one delta exchange with the remote peer.
type Exchanger interface {
	Exchange(ctx context.Context, req *Request) (*Response, error)
}

type Client struct {
	endpoint   string
	key        string
	httpClient *http.Client
}

func NewClient(endpoint, key string, httpClient *http.Client) *Client {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		endpoint:   endpoint,
		key:        key,
		httpClient: httpClient,
	}
}

func (c *Client) Exchange(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal sync request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/sync", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build sync request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(KeyHeader, c.key)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sync request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Surface the server's error text when there is one.
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode sync response: %w", err)
	}
	return &out, nil
}
