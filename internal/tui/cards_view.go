package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/merdandt/city-snaps/internal/normalize"
)

func renderEventItem(ev normalize.Event, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(sanitizeText(ev.Title), width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(sanitizeText(ev.Title), width-4))
	}

	meta := "  " + itemDateStyle.Render(truncateStr(sanitizeText(ev.Dates), width-4))

	return title + "\n" + meta
}

func renderEventList(events []normalize.Event, cursor int, height int, width int) string {
	if len(events) == 0 {
		return centered("No events", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(events) {
		end = len(events)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderEventItem(events[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderEventCard draws the full labeled card for the selected event.
func renderEventCard(ev *normalize.Event, news *normalize.News, width, height, scroll int) string {
	if ev == nil {
		return centered("Select an event", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := cardTitleStyle.Width(contentWidth).Render(sanitizeText(ev.Title))
	date := cardDateStyle.Render("When: " + sanitizeText(ev.Dates))
	location := cardLocationStyle.Render("Where: " + sanitizeText(ev.Location))

	desc := sanitizeText(ev.Description)
	if desc == "" {
		desc = "(No description available)"
	}
	body := cardBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))

	label := sourceLabel(ev.Source)
	var source string
	if label == invalidSourceLabel {
		source = invalidSourceStyle.Render("Source: " + label)
	} else {
		source = cardSourceStyle.Width(contentWidth).Render("Source: " + label)
	}

	sections := []string{title, date, location, "", body, "", source}

	if news != nil {
		sections = append(sections, "",
			newsTitleStyle.Render("Local News Update"),
			newsBodyStyle.Width(contentWidth).Render(wrapText(sanitizeText(news.Content), contentWidth)),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}
