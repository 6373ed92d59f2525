package normalize

import (
	"errors"
	"reflect"
	"testing"
)

const sampleEvent = `{"title": "Toddler Time", "dates": "April 7, 2025 10:10 am", "location": "Logan Library", "description": "Story time for toddlers", "source": "https://library.loganutah.org/events"}`

func TestNormalizeNoBrackets(t *testing.T) {
	tests := []string{
		"",
		"Here are the events I found for Logan this week.",
		"only an opening bracket [ and nothing else",
		"only a closing bracket ] here",
		"] reversed [",
	}
	for _, raw := range tests {
		_, err := Normalize(raw)
		var rec *RecoveryError
		if !errors.As(err, &rec) {
			t.Fatalf("Normalize(%q): expected RecoveryError, got %v", raw, err)
		}
		if rec.Reason != ReasonNoJSON {
			t.Errorf("Normalize(%q): reason = %q, want %q", raw, rec.Reason, ReasonNoJSON)
		}
		if rec.Raw != raw {
			t.Errorf("Normalize(%q): raw not preserved verbatim", raw)
		}
	}
}

func TestNormalizeInvalidJSON(t *testing.T) {
	raw := `Here you go: [{"title": "broken"` + "\n...and then the model stopped]"
	_, err := Normalize(raw)
	var rec *RecoveryError
	if !errors.As(err, &rec) {
		t.Fatalf("expected RecoveryError, got %v", err)
	}
	if rec.Reason != ReasonParseFailure {
		t.Errorf("reason = %q, want %q", rec.Reason, ReasonParseFailure)
	}
	if rec.Raw != raw {
		t.Error("raw response not preserved verbatim")
	}
}

func TestNormalizeEventsAndNews(t *testing.T) {
	raw := `Sure! [` + sampleEvent + `,
		{"title": "Jazz Kicks", "dates": "April 8, 2025 7:30 pm", "location": "Ellen Eccles Theatre", "description": "Jazz band performance", "source": "http://cachearts.org"},
		{"type": "news", "content": "Road construction on Main Street continues."},
		{"type": "news", "content": "A second news item that should be ignored."}]`

	res, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(res.Events))
	}
	if res.Events[0].Title != "Toddler Time" {
		t.Errorf("unexpected first event title: %q", res.Events[0].Title)
	}
	if res.Events[1].Source != "http://cachearts.org" {
		t.Errorf("unexpected second event source: %q", res.Events[1].Source)
	}
	if res.News == nil {
		t.Fatal("expected a news record")
	}
	if res.News.Content != "Road construction on Main Street continues." {
		t.Errorf("expected first news record to win, got %q", res.News.Content)
	}
}

func TestNormalizeFieldValuesUnmodified(t *testing.T) {
	raw := `[{"title": "  <b>Quilt Show</b> ", "dates": "", "location": "C&C Hall", "description": "100% \"handmade\"", "source": "not-a-url"}]`
	res, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := Event{
		Title:       "  <b>Quilt Show</b> ",
		Dates:       "",
		Location:    "C&C Hall",
		Description: `100% "handmade"`,
		Source:      "not-a-url",
	}
	if !reflect.DeepEqual(res.Events[0], want) {
		t.Errorf("event fields modified: got %+v, want %+v", res.Events[0], want)
	}
}

func TestNormalizeDropsMalformedObjects(t *testing.T) {
	raw := `[` + sampleEvent + `,
		{"title": "Missing keys", "dates": "April 9, 2025"},
		{"title": "Wrong type", "dates": 42, "location": "x", "description": "y", "source": "z"},
		"just a string",
		123,
		{"type": "announcement", "content": "not news"}]`

	res, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(res.Events) != 1 {
		t.Errorf("expected 1 event, got %d", len(res.Events))
	}
	if res.News != nil {
		t.Errorf("expected no news, got %+v", res.News)
	}
}

func TestNormalizeEmptyArrayIsOk(t *testing.T) {
	res, err := Normalize("No current Logan-area events found. []")
	if err != nil {
		t.Fatalf("empty array should not be a failure: %v", err)
	}
	if len(res.Events) != 0 || res.News != nil {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestNormalizeTrailingNewsHeuristic(t *testing.T) {
	raw := `[` + sampleEvent + `] In news, the city council approved the new bike path budget.`
	res, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.News == nil {
		t.Fatal("expected trailing prose to become a news record")
	}
	if res.News.Content != "the city council approved the new bike path budget." {
		t.Errorf("unexpected news content: %q", res.News.Content)
	}
}

func TestNormalizeTrailingNewsDuplicateSkipped(t *testing.T) {
	// Identical content already present as a JSON news object: the textual
	// heuristic must not add a second copy.
	raw := `[{"type": "news", "content": "fair parking is limited."}] In news, fair parking is limited.`
	res, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.News == nil || res.News.Content != "fair parking is limited." {
		t.Fatalf("unexpected news: %+v", res.News)
	}
}

func TestNormalizeJSONNewsWinsOverTrailing(t *testing.T) {
	raw := `[{"type": "news", "content": "from the payload"}] In news, from the prose.`
	res, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.News.Content != "from the payload" {
		t.Errorf("expected JSON news first, got %q", res.News.Content)
	}
}

func TestNormalizeProseWrappedArray(t *testing.T) {
	raw := "Here is what I found:\n\n[" + sampleEvent + "]\n\nLet me know if you need more detail."
	res, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(res.Events) != 1 {
		t.Errorf("expected 1 event, got %d", len(res.Events))
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := `[` + sampleEvent + `, {"type": "news", "content": "n1"}] In news, n2`
	first, err1 := Normalize(raw)
	second, err2 := Normalize(raw)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization is not deterministic: %+v vs %+v", first, second)
	}
}
