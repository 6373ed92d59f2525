// Package normalize recovers structured event and news records from the
// free-text replies of the remote model. The extraction is deliberately
// best-effort: it finds the outermost JSON array in the reply and validates
// each element's shape, nothing more. It never attempts JSON repair.
package normalize

import (
	"encoding/json"
	"strings"
)

// Recovery failure reasons. These are stable strings shown to the user
// alongside the raw response.
const (
	ReasonNoJSON       = "No JSON data found in response"
	ReasonParseFailure = "Failed to parse JSON response"
	ReasonNotASequence = "Received unexpected data format from the API"
)

// newsMarker precedes free-text news the model sometimes appends after the
// JSON array instead of embedding a news object in it.
const newsMarker = "In news,"

// Event is one local event as recovered from the model's reply. All five
// fields must be present (possibly empty) in the JSON object for it to
// count as an event.
type Event struct {
	Title       string `json:"title"`
	Dates       string `json:"dates"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// News is a community news blurb, either embedded in the JSON array as
// {"type":"news","content":...} or recovered from trailing prose.
type News struct {
	Content string `json:"content"`
}

// Result is a successfully normalized reply. An empty Events slice is a
// valid result and distinct from a recovery failure.
type Result struct {
	Events []Event
	News   *News
}

// RecoveryError reports that a reply could not be turned into structured
// data. Raw carries the original response verbatim for diagnosis.
type RecoveryError struct {
	Reason string
	Raw    string
}

func (e *RecoveryError) Error() string { return e.Reason }

var eventKeys = []string{"title", "dates", "location", "description", "source"}

// Normalize extracts event and news records from a raw model reply.
// On failure it returns a *RecoveryError; it never panics and has no
// hidden state, so the same input always yields the same output.
func Normalize(raw string) (Result, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return Result{}, &RecoveryError{Reason: ReasonNoJSON, Raw: raw}
	}

	var payload interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return Result{}, &RecoveryError{Reason: ReasonParseFailure, Raw: raw}
	}

	items, ok := payload.([]interface{})
	if !ok {
		return Result{}, &RecoveryError{Reason: ReasonNotASequence, Raw: raw}
	}

	var res Result
	var newsSeen []News
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if ev, ok := asEvent(obj); ok {
			res.Events = append(res.Events, ev)
			continue
		}
		if n, ok := asNews(obj); ok {
			newsSeen = append(newsSeen, n)
		}
		// Objects matching neither shape are dropped.
	}

	// Trailing prose news is a separate mechanism from the JSON payload;
	// the two are not reconciled beyond skipping an exact duplicate.
	if trailing, ok := trailingNews(raw); ok && !containsNews(newsSeen, trailing) {
		newsSeen = append(newsSeen, News{Content: trailing})
	}

	if len(newsSeen) > 0 {
		first := newsSeen[0]
		res.News = &first
	}
	return res, nil
}

// asEvent validates the event shape: all five keys must exist as strings.
func asEvent(obj map[string]interface{}) (Event, bool) {
	fields := make(map[string]string, len(eventKeys))
	for _, k := range eventKeys {
		v, ok := obj[k]
		if !ok {
			return Event{}, false
		}
		s, ok := v.(string)
		if !ok {
			return Event{}, false
		}
		fields[k] = s
	}
	return Event{
		Title:       fields["title"],
		Dates:       fields["dates"],
		Location:    fields["location"],
		Description: fields["description"],
		Source:      fields["source"],
	}, true
}

func asNews(obj map[string]interface{}) (News, bool) {
	if t, ok := obj["type"].(string); !ok || t != "news" {
		return News{}, false
	}
	content, _ := obj["content"].(string)
	return News{Content: content}, true
}

// trailingNews scans the original raw text (not the JSON substring) for the
// news marker and returns everything after its first occurrence.
func trailingNews(raw string) (string, bool) {
	_, after, found := strings.Cut(raw, newsMarker)
	if !found {
		return "", false
	}
	return strings.TrimSpace(after), true
}

func containsNews(seen []News, content string) bool {
	for _, n := range seen {
		if n.Content == content {
			return true
		}
	}
	return false
}
