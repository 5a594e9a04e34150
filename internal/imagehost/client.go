// Package imagehost uploads a single base64-encoded file to the external
// image host and returns its hosted URL. Blog covers, claim documents and
// profile photos all go through here.
package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyImage rejects an upload with no data before any network call.
var ErrEmptyImage = errors.New("no image data")

// Client posts to the host's upload endpoint with the configured API key.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
}

func New(endpoint, key string) *Client {
	return &Client{
		endpoint: endpoint,
		key:      key,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends base64 image data and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, base64Data string) (string, error) {
	base64Data = strings.TrimSpace(base64Data)
	if base64Data == "" {
		return "", ErrEmptyImage
	}
	form := url.Values{}
	form.Set("key", c.key)
	form.Set("image", base64Data)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.New("image host rejected upload")
	}
	var out struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Data.URL == "" {
		return "", errors.New("image host returned no url")
	}
	return out.Data.URL, nil
}
