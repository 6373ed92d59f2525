package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	` ██████╗██╗████████╗██╗   ██╗███████╗███╗   ██╗ █████╗ ██████╗ ███████╗`,
	`██╔════╝██║╚══██╔══╝╚██╗ ██╔╝██╔════╝████╗  ██║██╔══██╗██╔══██╗██╔════╝`,
	`██║     ██║   ██║    ╚████╔╝ ███████╗██╔██╗ ██║███████║██████╔╝███████╗`,
	`██║     ██║   ██║     ╚██╔╝  ╚════██║██║╚██╗██║██╔══██║██╔═══╝ ╚════██║`,
	`╚██████╗██║   ██║      ██║   ███████║██║ ╚████║██║  ██║██║     ███████║`,
	` ╚═════╝╚═╝   ╚═╝      ╚═╝   ╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝     ╚══════╝`,
}

func renderHomeScreen(width, height int, place string, hasKey bool) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	subStyle := lipgloss.NewStyle().Foreground(colorDim)

	var lines []string

	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "")
	lines = append(lines, subStyle.Render("          Local events and news for "+place))
	lines = append(lines, "")

	if !hasKey {
		warn := lipgloss.NewStyle().Foreground(colorWarn)
		lines = append(lines, warn.Render("          No API key configured."))
		lines = append(lines, warn.Render("          Set PPLX_API_KEY or api_key in the config file to search."))
		lines = append(lines, "")
		lines = append(lines, "          "+menuKeyStyle.Render("[y]")+"  "+menuLabelStyle.Render("Query history"))
		lines = append(lines, "")
		lines = append(lines, "          "+menuKeyStyle.Render("[q]")+"  "+menuLabelStyle.Render("Quit"))
	} else {
		lines = append(lines, "          "+menuKeyStyle.Render("[t]")+"  "+menuLabelStyle.Render("Today's events"))
		lines = append(lines, "          "+menuKeyStyle.Render("[u]")+"  "+menuLabelStyle.Render("Upcoming events"))
		lines = append(lines, "          "+menuKeyStyle.Render("[c]")+"  "+menuLabelStyle.Render("Search by category"))
		lines = append(lines, "          "+menuKeyStyle.Render("[s]")+"  "+menuLabelStyle.Render("Custom search"))
		lines = append(lines, "          "+menuKeyStyle.Render("[y]")+"  "+menuLabelStyle.Render("Query history"))
		lines = append(lines, "")
		lines = append(lines, "          "+menuKeyStyle.Render("[q]")+"  "+menuLabelStyle.Render("Quit"))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
