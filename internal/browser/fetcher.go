package browser

import (
	"context"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/html/charset"
)

const (
	defaultTimeout   = 15 * time.Second
	maxBodySize      = 10 * 1024 * 1024 // 10 MB
	defaultUserAgent = "swb/0.2 (terminal browser)"
)

// sharedTransport is a tuned HTTP transport shared across all clients so
// connections get pooled and reused.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ResponseHeaderTimeout: 15 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
}

// FetchResult holds the raw response for a URL.
type FetchResult struct {
	URL         string
	FinalURL    string // after redirects
	StatusCode  int
	ContentType string
	Body        []byte
	Duration    time.Duration
}

// Fetcher retrieves pages over http(s) and file URLs. Bodies are decoded
// to UTF-8 before they leave the fetcher.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher with the shared transport and sensible
// defaults.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: sharedTransport,
			Timeout:   defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects (>10)")
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
	}
}

// Fetch retrieves the content at rawURL with a cancellable context.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	rawURL = NormalizeURL(rawURL)

	if strings.HasPrefix(rawURL, "file://") {
		return fetchFile(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: server returned %s", rawURL, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(body).String()
	}
	if IsHTML(contentType) {
		body = decodeToUTF8(body, contentType)
	}

	return &FetchResult{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
		Duration:    time.Since(start),
	}, nil
}

// fetchFile serves file:// URLs, the target of the home fallback.
// Directories are synthesized into a small HTML listing so the home jump
// lands on something navigable.
func fetchFile(rawURL string) (*FetchResult, error) {
	path := strings.TrimPrefix(rawURL, "file://")
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	if info.IsDir() {
		body, err := renderDirListing(path)
		if err != nil {
			return nil, err
		}
		return &FetchResult{
			URL:         rawURL,
			FinalURL:    rawURL,
			StatusCode:  http.StatusOK,
			ContentType: "text/html; charset=utf-8",
			Body:        body,
			Duration:    time.Since(start),
		}, nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(body) > maxBodySize {
		body = body[:maxBodySize]
	}

	contentType := mimetype.Detect(body).String()
	return &FetchResult{
		URL:         rawURL,
		FinalURL:    rawURL,
		StatusCode:  http.StatusOK,
		ContentType: contentType,
		Body:        body,
		Duration:    time.Since(start),
	}, nil
}

func renderDirListing(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var sb strings.Builder
	sb.WriteString("<html><body><h1>" + html.EscapeString(dir) + "</h1><ul>\n")
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		href := "file://" + filepath.Join(dir, name)
		sb.WriteString(fmt.Sprintf("<li><a href=\"%s\">%s</a></li>\n",
			html.EscapeString(href), html.EscapeString(name)))
	}
	sb.WriteString("</ul></body></html>\n")
	return []byte(sb.String()), nil
}

// decodeToUTF8 converts a body to UTF-8 using the charset from the
// Content-Type header, falling back to the bytes as-is when no decoder
// applies.
func decodeToUTF8(body []byte, contentType string) []byte {
	r, err := charset.NewReader(strings.NewReader(string(body)), contentType)
	if err != nil {
		return body
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return body
	}
	return decoded
}

// NormalizeURL trims the input and adds https:// when no scheme is
// present. Anything that still does not resolve flows through the
// load-failure fallback chain; there is no search shortcut here.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "file://") {
		return raw
	}
	return "https://" + raw
}

// IsHTML checks whether the content type indicates HTML.
func IsHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
