package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette, shared with the interactive viewer.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan: headings
	colorAccent  = lipgloss.Color("#FFD700") // Gold: current period and yogas
	colorSuccess = lipgloss.Color("#00E676") // Green: ok
	colorDanger  = lipgloss.Color("#FF5252") // Red: errors and combustion
	colorMuted   = lipgloss.Color("#636363") // Gray: borders
	colorBlue    = lipgloss.Color("#5B8DEF") // Blue: retrograde
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white: body text
)

// Flag markers in the planets table.
const (
	markRetrograde = "R"
	markCombust    = "C"
	markCurrent    = "▶"
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSection = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginTop(1)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleValue = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleBorder = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1)

	styleCell = lipgloss.NewStyle().
			Padding(0, 1)

	styleRetrograde = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	styleCombust = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleCurrent = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)

	styleYoga = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleGridCell = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Width(14).
			Height(2)

	styleGridKey = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleInfo = lipgloss.NewStyle().
			Foreground(colorMuted)
)
