package calendar

import (
	"testing"
	"time"

	"github.com/merdandt/city-snaps/internal/normalize"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestParseEventDateLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"April 7, 2025 10:10 am", "2025-04-07"},
		{"April 7, 2025", "2025-04-07"},
		{"Apr 7, 2025 7:30 pm", "2025-04-07"},
		{"04/01/2025", "2025-04-01"},
		{"2025-04-01", "2025-04-01"},
		{"December 31, 2025 11:59 pm", "2025-12-31"},
	}
	for _, tt := range tests {
		got, ok := ParseEventDate(tt.input, fixedNow)
		if !ok {
			t.Errorf("ParseEventDate(%q): expected a date", tt.input)
			continue
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseEventDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestParseEventDateYearFallback(t *testing.T) {
	// No layout matches, but a bare 4-digit year token exists: the result
	// uses that year with now's month and day. Approximate on purpose.
	got, ok := ParseEventDate("sometime in 2025", fixedNow)
	if !ok {
		t.Fatal("expected fallback date")
	}
	want := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("fallback date = %v, want %v", got, want)
	}
}

func TestParseEventDateNoDate(t *testing.T) {
	tests := []string{
		"no date info",
		"",
		"every Tuesday at 7pm",
		"the 12345 block party", // 5 digits is not a year token
	}
	for _, input := range tests {
		if _, ok := ParseEventDate(input, fixedNow); ok {
			t.Errorf("ParseEventDate(%q): expected no date", input)
		}
	}
}

func TestProjectSortsAscendingAndOmitsUnparseable(t *testing.T) {
	events := []normalize.Event{
		{Title: "Later", Dates: "April 12, 2025 12:00 pm", Location: "Park"},
		{Title: "Undated", Dates: "check website for details", Location: "TBD"},
		{Title: "Earlier", Dates: "April 7, 2025 10:10 am", Location: "Library"},
		{Title: "Middle", Dates: "04/08/2025", Location: "Theatre"},
	}

	entries := Project(events, fixedNow)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	order := []string{"Earlier", "Middle", "Later"}
	for i, want := range order {
		if entries[i].Title != want {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Title, want)
		}
	}
	if entries[0].Location != "Library" {
		t.Errorf("location not carried through: %q", entries[0].Location)
	}
}

func TestProjectEmpty(t *testing.T) {
	if entries := Project(nil, fixedNow); len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
