package tui

import (
	"strings"

	"github.com/merdandt/city-snaps/internal/calendar"
)

// renderCalendar draws the calendar table: one row per event with a
// parseable date, ascending. Events without one appear as cards only.
func renderCalendar(entries []calendar.Entry, width, height, scroll int) string {
	if len(entries) == 0 {
		return centered("No events with parseable dates", width, height)
	}

	dateW := 12
	restW := width - dateW - 3
	titleW := restW * 3 / 5
	locW := restW - titleW
	if titleW < 10 {
		titleW = 10
	}
	if locW < 8 {
		locW = 8
	}

	var b strings.Builder
	b.WriteString(calHeaderStyle.Render(pad("Date", dateW) + " " + pad("Event", titleW) + " " + pad("Location", locW)))
	b.WriteString("\n")
	b.WriteString(helpDimStyle.Render(strings.Repeat("─", min(width, dateW+titleW+locW+2))))
	b.WriteString("\n")

	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		row := calDateStyle.Render(pad(e.Date.Format("2006-01-02"), dateW)) + " " +
			calRowStyle.Render(pad(truncateStr(sanitizeText(e.Title), titleW), titleW)) + " " +
			calRowStyle.Render(truncateStr(sanitizeText(e.Location), locW))
		rows = append(rows, row)
	}

	if scroll > len(rows)-1 {
		scroll = len(rows) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	end := scroll + visible
	if end > len(rows) {
		end = len(rows)
	}

	b.WriteString(strings.Join(rows[scroll:end], "\n"))
	return b.String()
}

func pad(s string, w int) string {
	runes := []rune(s)
	if len(runes) >= w {
		return string(runes[:w])
	}
	return s + strings.Repeat(" ", w-len(runes))
}
