// Package remote is the bookmark sync boundary. The client fetches a
// replacement bookmark tree from a user-configured endpoint before the
// chrome starts; with the default empty endpoint it never runs.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when no sync endpoint is set.
var ErrNotConfigured = errors.New("remote: sync endpoint not configured")

// Client talks to the bookmark sync endpoint.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient creates a client for the given endpoint. An empty endpoint
// is allowed; FetchBookmarks then reports ErrNotConfigured.
func NewClient(syncURL string) *Client {
	c := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &Client{http: c, url: syncURL}
}

// FetchBookmarks retrieves the bookmark tree in its nested
// [folder][entry][label,url] array shape.
func (c *Client) FetchBookmarks(ctx context.Context) ([][][]string, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	var tree [][][]string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&tree).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetching bookmarks: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching bookmarks: %s returned %s", c.url, resp.Status())
	}
	return tree, nil
}
