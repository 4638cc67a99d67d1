package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestFetchBookmarks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[["News",""],["HN","https://news.ycombinator.com"]],[["Go","https://go.dev"]]]`))
	}))
	defer srv.Close()

	tree, err := NewClient(srv.URL).FetchBookmarks(context.Background())
	if err != nil {
		t.Fatalf("FetchBookmarks() error: %v", err)
	}

	want := [][][]string{
		{{"News", ""}, {"HN", "https://news.ycombinator.com"}},
		{{"Go", "https://go.dev"}},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("tree = %v, want %v", tree, want)
	}
}

func TestFetchBookmarksServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchBookmarks(context.Background()); err == nil {
		t.Error("FetchBookmarks() accepted a 500 response")
	}
}

func TestFetchBookmarksNotConfigured(t *testing.T) {
	_, err := NewClient("").FetchBookmarks(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
