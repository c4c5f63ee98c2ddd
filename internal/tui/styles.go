package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan: active tab
	colorMuted   = lipgloss.Color("#636363") // Gray: inactive text
	colorDanger  = lipgloss.Color("#FF5252") // Red: reload errors
	colorSurface = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white: status text
)

var (
	styleTabBar = lipgloss.NewStyle().
			PaddingLeft(2)

	styleTabActive = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorMuted)

	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleReloadError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true).
				PaddingLeft(2)

	styleScrollIndicator = lipgloss.NewStyle().
				Foreground(colorMuted).
				PaddingLeft(2)
)
