// Package calendar derives sortable calendar dates from the free-text date
// strings the model returns. This is a display aid only: an event whose date
// cannot be parsed still renders as a card, it just stays off the calendar.
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/merdandt/city-snaps/internal/normalize"
)

// Entry is one row of the calendar table.
type Entry struct {
	Date     time.Time
	Title    string
	Location string
}

// Layouts tried against the first three tokens of the date text, in order.
var layouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"01/02/2006",
	"2006-01-02",
}

// ParseEventDate attempts to recover a calendar date from free-form text
// like "April 7, 2025 10:10 am". The reported ok is false when no date
// could be derived. now anchors the last-resort year fallback: when only a
// 4-digit year token is found, the result uses now's month and day. That is
// a known-approximate guess kept for deterministic ordering, not a real
// parse.
func ParseEventDate(dateText string, now time.Time) (time.Time, bool) {
	parts := strings.Fields(dateText)

	n := len(parts)
	if n > 3 {
		n = 3
	}
	candidate := strings.ReplaceAll(strings.Join(parts[:n], " "), ",", "")

	for _, layout := range layouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, true
		}
	}

	for _, p := range parts {
		if len(p) == 4 && isDigits(p) {
			year := int(p[0]-'0')*1000 + int(p[1]-'0')*100 + int(p[2]-'0')*10 + int(p[3]-'0')
			return time.Date(year, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Project builds calendar entries for every event with a parseable date,
// sorted ascending. Events without one are omitted.
func Project(events []normalize.Event, now time.Time) []Entry {
	var entries []Entry
	for _, ev := range events {
		d, ok := ParseEventDate(ev.Dates, now)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Date: d, Title: ev.Title, Location: ev.Location})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}
