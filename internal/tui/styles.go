package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorWarn      = lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#E5C07B"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	listPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	listPaneActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorActiveBdr)

	cardPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	cardPaneActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorActiveBdr)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemDateStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	cardDateStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	cardLocationStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Italic(true)

	cardBodyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	cardSourceStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	invalidSourceStyle = lipgloss.NewStyle().
				Foreground(colorWarn).
				Italic(true)

	newsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	newsBodyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	calHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	calDateStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	calRowStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	errorTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	errorRawStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	searchPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	menuLabelStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	pickerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)
