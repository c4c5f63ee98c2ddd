// Package tui is the interactive chart viewer built on bubbletea.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssingla/astralyogi/internal/chart"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a viewer program for c on the alternate screen.
func NewProgram(c *chart.Chart, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(c), allOpts...)
}

// Run shows c and blocks until the user quits.
func Run(c *chart.Chart) error {
	if _, err := NewProgram(c).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
