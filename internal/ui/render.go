package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ssingla/astralyogi/internal/chart"
	"github.com/ssingla/astralyogi/internal/dasha"
	"github.com/ssingla/astralyogi/internal/grid"
	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/yoga"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// gridColumns is the number of cells per row in a rendered grid.
const gridColumns = 4

// Abbrev returns the two-letter short name of a body ("Su", "Mo", ...).
func Abbrev(b planet.Body) string {
	name := b.String()
	if len(name) < 2 {
		return name
	}
	return name[:2]
}

// Flags renders the retrograde and combust markers of a point.
func Flags(p chart.Point) string {
	var marks []string
	if p.Retrograde {
		marks = append(marks, styleRetrograde.Render(markRetrograde))
	}
	if p.Combust {
		marks = append(marks, styleCombust.Render(markCombust))
	}
	return strings.Join(marks, " ")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

// PlanetTable renders one row per point: sign, degree, nakshatra, pada,
// house and flags.
func PlanetTable(points []chart.Point) string {
	t := newTable("Planet", "Sign", "Degree", "Nakshatra", "Pada", "House", "")
	for _, p := range points {
		t.Row(
			p.Body.String(),
			p.Sign.String(),
			p.DegreeString(),
			p.Nakshatra.String(),
			strconv.Itoa(p.Pada),
			strconv.Itoa(p.House),
			Flags(p),
		)
	}
	return t.Render()
}

// gridKeys lists every cell of a grid kind in display order, occupied or
// not.
func gridKeys(kind grid.Kind) []string {
	if kind == grid.Navamsha {
		keys := make([]string, 0, 12)
		for _, s := range zodiac.Signs() {
			keys = append(keys, s.String())
		}
		return keys
	}
	keys := make([]string, 0, 12)
	for h := 1; h <= 12; h++ {
		keys = append(keys, strconv.Itoa(h))
	}
	return keys
}

// Grid renders all twelve cells of g as boxes, four to a row.
func Grid(g grid.Grid) string {
	keys := gridKeys(g.Kind)
	rows := make([]string, 0, len(keys)/gridColumns)
	for i := 0; i < len(keys); i += gridColumns {
		cells := make([]string, 0, gridColumns)
		for _, key := range keys[i:min(i+gridColumns, len(keys))] {
			bodies := g.Bodies(key)
			names := make([]string, len(bodies))
			for j, b := range bodies {
				names[j] = Abbrev(b)
			}
			content := styleGridKey.Render(key) + "\n" + styleValue.Render(strings.Join(names, " "))
			cells = append(cells, styleGridCell.Render(content))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// GridTitle names a grid kind for headings.
func GridTitle(kind grid.Kind) string {
	switch kind {
	case grid.Lagna:
		return "Lagna chart"
	case grid.Moon:
		return "Moon chart"
	case grid.Chalit:
		return "Chalit chart"
	case grid.Navamsha:
		return "Navamsha chart"
	default:
		return string(kind)
	}
}

// DivisionalTable renders one row per body and one column per divisional
// chart.
func DivisionalTable(divs []chart.Divisional) string {
	headers := make([]string, 0, len(divs)+1)
	headers = append(headers, "Planet")
	for _, d := range divs {
		headers = append(headers, d.Name)
	}
	t := newTable(headers...)
	for _, b := range planet.All() {
		row := make([]string, 0, len(divs)+1)
		row = append(row, b.String())
		for _, d := range divs {
			if s, ok := d.Signs[b]; ok {
				row = append(row, s.String())
			} else {
				row = append(row, "")
			}
		}
		t.Row(row...)
	}
	return t.Render()
}

// YogaList renders detected yogas, one per line.
func YogaList(ys []yoga.Yoga) string {
	if len(ys) == 0 {
		return styleInfo.Render("no yogas detected")
	}
	lines := make([]string, len(ys))
	for i, y := range ys {
		lines[i] = styleYoga.Render("◆ "+y.Name) + styleLabel.Render(fmt.Sprintf(" (%.1f)", y.Score))
	}
	return strings.Join(lines, "\n")
}

// DashaTable renders the mahadasha timeline, marking current.
func DashaTable(tl dasha.Timeline, current dasha.Period) string {
	t := newTable("", "Mahadasha", "Start", "End", "Years")
	currentRow := -1
	for i, p := range tl.Periods {
		mark := ""
		if p.Lord == current.Lord && p.Start.Equal(current.Start) {
			mark = markCurrent
			currentRow = i
		}
		t.Row(
			mark,
			p.Lord.String(),
			p.Start.Format(time.DateOnly),
			p.End.Format(time.DateOnly),
			fmt.Sprintf("%.2f", float64(p.Days())/dasha.DaysPerYear),
		)
	}
	return t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch row {
		case table.HeaderRow:
			return styleHeader
		case currentRow:
			return styleCurrent
		default:
			return styleCell
		}
	}).Render()
}

// Ascendant renders the ascendant line.
func Ascendant(a chart.Ascendant) string {
	return styleLabel.Render("Ascendant ") + styleValue.Render(a.String())
}

// Report renders the full chart.
func Report(c *chart.Chart) string {
	var sb strings.Builder

	title := "Birth chart"
	if c.Name != "" {
		title += " — " + c.Name
	}
	sb.WriteString(styleTitle.Render(title) + "\n")
	sb.WriteString(styleLabel.Render("Born ") + styleValue.Render(c.Birth.Format("2006-01-02 15:04 MST")) +
		styleLabel.Render(" in ") + styleValue.Render(fmt.Sprintf("%s (%.4f, %.4f)", c.Location.Name, c.Location.Latitude, c.Location.Longitude)) + "\n")
	sb.WriteString(Ascendant(c.Ascendant) + "\n")

	section := func(name, body string) {
		sb.WriteString(styleSection.Render(name) + "\n")
		sb.WriteString(body + "\n")
	}

	section("Planets", PlanetTable(c.Points))
	for _, k := range grid.Kinds() {
		section(GridTitle(k), Grid(c.Grids.Get(k)))
	}
	section("Divisional charts", DivisionalTable(c.Divisionals))
	section("Yogas", YogaList(c.Yogas))
	section("Vimshottari dasha", DashaTable(c.Dasha, c.CurrentDasha))
	section("Transits "+c.Transit.At.UTC().Format("2006-01-02 15:04 UTC"), PlanetTable(c.Transit.Points))
	return sb.String()
}
