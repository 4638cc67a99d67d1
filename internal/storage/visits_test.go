package storage

import (
	"fmt"
	"testing"
)

func openTestLog(t *testing.T) *VisitLog {
	t.Helper()
	log, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestVisitLogAddAndRecent(t *testing.T) {
	log := openTestLog(t)

	for i := 1; i <= 3; i++ {
		url := fmt.Sprintf("https://example.com/%d", i)
		if err := log.Add(url, fmt.Sprintf("Page %d", i)); err != nil {
			t.Fatalf("Add(%s) error: %v", url, err)
		}
	}

	visits, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(visits) != 3 {
		t.Fatalf("got %d visits, want 3", len(visits))
	}
	// Newest first.
	if visits[0].URL != "https://example.com/3" {
		t.Errorf("first visit = %q, want the newest", visits[0].URL)
	}
}

func TestVisitLogCoalescesRepeatOfMostRecent(t *testing.T) {
	log := openTestLog(t)

	if err := log.Add("https://example.com", ""); err != nil {
		t.Fatal(err)
	}
	if err := log.Add("https://example.com", "Example"); err != nil {
		t.Fatal(err)
	}

	visits, err := log.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 1 {
		t.Fatalf("got %d visits, want 1 coalesced row", len(visits))
	}
	if visits[0].Title != "Example" {
		t.Errorf("title = %q, want the refreshed title", visits[0].Title)
	}
}

func TestVisitLogRecentLimit(t *testing.T) {
	log := openTestLog(t)
	for i := 0; i < 5; i++ {
		if err := log.Add(fmt.Sprintf("https://example.com/%d", i), ""); err != nil {
			t.Fatal(err)
		}
	}

	visits, err := log.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 2 {
		t.Errorf("got %d visits, want 2", len(visits))
	}
}

func TestVisitLogClear(t *testing.T) {
	log := openTestLog(t)
	if err := log.Add("https://example.com", ""); err != nil {
		t.Fatal(err)
	}
	if err := log.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	visits, err := log.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 0 {
		t.Errorf("got %d visits after Clear, want 0", len(visits))
	}
}

func TestVisitLogIgnoresEmptyURL(t *testing.T) {
	log := openTestLog(t)
	if err := log.Add("", "no url"); err != nil {
		t.Fatal(err)
	}
	visits, err := log.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 0 {
		t.Errorf("empty URL was recorded: %v", visits)
	}
}
