package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"file:///home/user", "file:///home/user"},
		{"example.com", "https://example.com"},
		{"  example.com  ", "https://example.com"},
		{"not a url", "https://not a url"}, // flows into the fallback chain
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchHTMLPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	defer srv.Close()

	result, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !IsHTML(result.ContentType) {
		t.Errorf("ContentType = %q, want HTML", result.ContentType)
	}
	if !strings.Contains(string(result.Body), "hello") {
		t.Error("body missing expected content")
	}
	if result.FinalURL == "" {
		t.Error("FinalURL not set")
	}
}

func TestFetchErrorStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewFetcher().Fetch(context.Background(), srv.URL); err == nil {
		t.Error("Fetch() accepted a 404 response")
	}
}

func TestFetchSniffsMissingContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("<!DOCTYPE html><html><body>sniff me</body></html>"))
	}))
	defer srv.Close()

	result, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !IsHTML(result.ContentType) {
		t.Errorf("sniffed ContentType = %q, want HTML", result.ContentType)
	}
}

func TestFetchFileURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<html><body>local file</body></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := NewFetcher().Fetch(context.Background(), "file://"+path)
	if err != nil {
		t.Fatalf("Fetch(file://) error: %v", err)
	}
	if !strings.Contains(string(result.Body), "local file") {
		t.Error("file body not returned")
	}
	if !IsHTML(result.ContentType) {
		t.Errorf("ContentType = %q, want HTML", result.ContentType)
	}
}

func TestFetchFileDirectoryListing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha.txt", "beta.txt", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	result, err := NewFetcher().Fetch(context.Background(), "file://"+dir)
	if err != nil {
		t.Fatalf("Fetch(dir) error: %v", err)
	}

	body := string(result.Body)
	if !strings.Contains(body, "alpha.txt") || !strings.Contains(body, "beta.txt") {
		t.Errorf("listing missing entries:\n%s", body)
	}
	if strings.Contains(body, ".hidden") {
		t.Error("listing includes dotfiles")
	}
	if !IsHTML(result.ContentType) {
		t.Errorf("ContentType = %q, want HTML listing", result.ContentType)
	}
}

func TestFetchMissingFileFails(t *testing.T) {
	if _, err := NewFetcher().Fetch(context.Background(), "file:///does/not/exist"); err == nil {
		t.Error("Fetch() of a missing file did not fail")
	}
}

func TestIsHTML(t *testing.T) {
	if !IsHTML("text/html; charset=utf-8") {
		t.Error("text/html not recognized")
	}
	if IsHTML("application/json") {
		t.Error("application/json recognized as HTML")
	}
}
