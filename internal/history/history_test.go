package history

import (
	"path/filepath"
	"testing"
	"time"
)

func testLog(t *testing.T) (*Log, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("opening test log: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, path
}

func TestAppendAndRecent(t *testing.T) {
	l, _ := testLog(t)
	now := time.Now()

	records := []Record{
		{Query: "today", Raw: "[]", OK: true, EventCount: 0, CreatedAt: now.Add(-2 * time.Hour)},
		{Query: "music", Raw: "no brackets here", OK: false, Reason: "No JSON data found in response", CreatedAt: now.Add(-1 * time.Hour)},
		{Query: "upcoming 7", Raw: `[{"title":"x"}]`, OK: true, EventCount: 1, CreatedAt: now},
	}
	for _, r := range records {
		if err := l.Append(r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := l.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	// Newest first
	if got[0].Query != "upcoming 7" {
		t.Errorf("expected newest first, got %q", got[0].Query)
	}
	if got[1].OK {
		t.Error("expected failed record to stay failed")
	}
	if got[1].Reason != "No JSON data found in response" {
		t.Errorf("reason not preserved: %q", got[1].Reason)
	}
	if got[1].Raw != "no brackets here" {
		t.Errorf("raw response not preserved: %q", got[1].Raw)
	}
}

func TestRecentLimit(t *testing.T) {
	l, _ := testLog(t)
	for i := 0; i < 5; i++ {
		if err := l.Append(Record{Query: "q", Raw: "[]", OK: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got, err := l.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 records, got %d", len(got))
	}
}

func TestPrune(t *testing.T) {
	l, _ := testLog(t)
	now := time.Now()

	l.Append(Record{Query: "old", Raw: "[]", OK: true, CreatedAt: now.Add(-100 * 24 * time.Hour)})
	l.Append(Record{Query: "recent", Raw: "[]", OK: true, CreatedAt: now})

	deleted, err := l.Prune(90 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	got, _ := l.Recent(10)
	if len(got) != 1 || got[0].Query != "recent" {
		t.Errorf("unexpected surviving records: %v", got)
	}
}

func TestStats(t *testing.T) {
	l, path := testLog(t)
	l.Append(Record{Query: "q", Raw: "[]", OK: true})

	count, size, err := l.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 record, got %d", count)
	}
	if size <= 0 {
		t.Errorf("expected positive db size, got %d", size)
	}
}
