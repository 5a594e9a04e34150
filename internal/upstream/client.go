// Package upstream is the gateway's only door to the storefront data API.
// One configured Client is shared by every resource client; reads go
// through the query cache, writes go straight through and then invalidate
// the reads they made stale.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type actorKey struct{}

// WithActor tags a context with the acting user's email. The client
// forwards it so the backend can scope and audit requests.
func WithActor(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, actorKey{}, email)
}

// APIError is a non-2xx upstream response. Callers branch on Status; the
// body is kept for the user-facing failure message.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

// Client is the single pre-configured HTTP client for the data API. No
// other component constructs its own.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log.With().Str("component", "upstream").Logger(),
	}
}

// do issues one request. A JSON body is attached for non-nil in; a non-2xx
// status becomes *APIError with the body preserved.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		req.Header.Set("X-User-Email", actor)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

// GetRaw fetches a path and returns the raw JSON body.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Get fetches a path and decodes into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

// Post sends a create; out may be nil when the response body is not needed.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

// Patch sends a partial update.
func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	raw, err := c.do(ctx, http.MethodPatch, path, in)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func decode(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
