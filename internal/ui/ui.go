// Package ui renders charts for the terminal with lipgloss. The render
// functions return strings so the interactive viewer can reuse them; the
// Printer writes them out.
package ui

import (
	"fmt"
	"io"

	"github.com/ssingla/astralyogi/internal/chart"
)

// Printer writes rendered output to a writer.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Chart prints the full chart report.
func (p *Printer) Chart(c *chart.Chart) {
	fmt.Fprint(p.w, Report(c))
}

// Dasha prints only the ascendant and the dasha timeline.
func (p *Printer) Dasha(c *chart.Chart) {
	fmt.Fprintln(p.w, Ascendant(c.Ascendant))
	fmt.Fprintln(p.w, styleLabel.Render("Current mahadasha ")+styleCurrent.Render(c.CurrentDasha.Lord.String()))
	fmt.Fprintln(p.w, DashaTable(c.Dasha, c.CurrentDasha))
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, styleError.Render("error: ")+msg)
}

// Success prints a check-marked line.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, styleSuccess.Render("✓ ")+msg)
}

// Info prints a de-emphasized line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, styleInfo.Render(msg))
}

// CheckResult prints one validation check.
func (p *Printer) CheckResult(name string, err error) {
	if err != nil {
		fmt.Fprintln(p.w, styleError.Render("✗ "+name)+" "+err.Error())
		return
	}
	p.Success(name)
}
