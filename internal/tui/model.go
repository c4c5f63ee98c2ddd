package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssingla/astralyogi/internal/chart"
	"github.com/ssingla/astralyogi/internal/grid"
	"github.com/ssingla/astralyogi/internal/ui"
)

// Rows taken by the status bar, tab bar, reload line and help footer.
const chromeHeight = 4

// MsgChart delivers a rebuilt chart, for example after the profile was
// edited. A non-nil Err keeps the current chart on screen.
type MsgChart struct {
	Chart *chart.Chart
	Err   error
}

// Model is the bubbletea model of the chart viewer.
type Model struct {
	Chart *chart.Chart
	Tab   Tab
	Keys  KeyMap

	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	lastErr  error
}

// NewModel creates a viewer for c.
func NewModel(c *chart.Chart) Model {
	m := Model{
		Chart:    c,
		Tab:      TabPlanets,
		Keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20 + chromeHeight,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case MsgChart:
		m.lastErr = msg.Err
		if msg.Err == nil && msg.Chart != nil {
			m.Chart = msg.Chart
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.NextTab):
			m.setTab(m.Tab.Next())
			return m, nil
		case key.Matches(msg, m.Keys.PrevTab):
			m.setTab(m.Tab.Prev())
			return m, nil
		case key.Matches(msg, m.Keys.JumpTab):
			n, _ := strconv.Atoi(msg.String())
			if tab, ok := TabFromNumber(n); ok {
				m.setTab(tab)
			}
			return m, nil
		case key.Matches(msg, m.Keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.Keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setTab(t Tab) {
	m.Tab = t
	m.refresh()
}

// refresh re-renders the active tab into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(Content(m.Chart, m.Tab))
	m.viewport.GotoTop()
}

// Content renders the body of a tab.
func Content(c *chart.Chart, t Tab) string {
	if c == nil {
		return "no chart"
	}
	switch t {
	case TabGrids:
		var sections []string
		for _, k := range grid.Kinds() {
			sections = append(sections, ui.GridTitle(k)+"\n"+ui.Grid(c.Grids.Get(k)))
		}
		sections = append(sections, "Divisional charts\n"+ui.DivisionalTable(c.Divisionals))
		return strings.Join(sections, "\n\n")
	case TabDasha:
		return ui.DashaTable(c.Dasha, c.CurrentDasha)
	case TabTransit:
		return "Transits at " + c.Transit.At.UTC().Format("2006-01-02 15:04 UTC") + "\n" + ui.PlanetTable(c.Transit.Points)
	default:
		return ui.Ascendant(c.Ascendant) + "\n" + ui.PlanetTable(c.Points) + "\n\n" + ui.YogaList(c.Yogas)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "astralyogi"
	if m.Chart != nil {
		title = fmt.Sprintf("astralyogi  %s  %s  %s", m.Chart.Name, m.Chart.Birth.Format("2006-01-02 15:04"), m.Chart.Location.Name)
	}
	b.WriteString(styleStatusBar.Width(m.width).Render(title))
	b.WriteString("\n")
	b.WriteString(TabBar{Active: m.Tab, Width: m.width}.View())
	b.WriteString("\n")

	if m.lastErr != nil {
		b.WriteString(styleReloadError.Render("reload failed: " + m.lastErr.Error()))
	} else if pct := m.viewport.ScrollPercent(); m.viewport.TotalLineCount() > m.viewport.Height {
		b.WriteString(styleScrollIndicator.Render(fmt.Sprintf("%3.0f%%", pct*100)))
	}
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.Keys))
	return b.String()
}
