package tui

import (
	"fmt"
	"strings"
)

// Tab identifies a page of the viewer.
type Tab int

const (
	// TabPlanets shows the ascendant, placements and yogas (default).
	TabPlanets Tab = iota
	// TabGrids shows the four grids and the divisional charts.
	TabGrids
	// TabDasha shows the Vimshottari timeline.
	TabDasha
	// TabTransit shows the transit snapshot.
	TabTransit
)

// tabCount is the total number of tabs.
const tabCount = 4

// Label returns the display label for a tab.
func (t Tab) Label() string {
	switch t {
	case TabPlanets:
		return "planets"
	case TabGrids:
		return "grids"
	case TabDasha:
		return "dasha"
	case TabTransit:
		return "transit"
	default:
		return "unknown"
	}
}

// Next cycles forward to the next tab, wrapping around.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % tabCount)
}

// Prev cycles backward to the previous tab, wrapping around.
func (t Tab) Prev() Tab {
	return Tab((int(t) + tabCount - 1) % tabCount)
}

// TabFromNumber converts a 1-based number key to a Tab.
// Returns the tab and true if valid, or TabPlanets and false otherwise.
func TabFromNumber(n int) (Tab, bool) {
	idx := n - 1
	if idx >= 0 && idx < tabCount {
		return Tab(idx), true
	}
	return TabPlanets, false
}

// TabBar renders a horizontal row of tab labels.
type TabBar struct {
	Active Tab
	Width  int
}

// View renders the tab bar as a single styled line. The active tab is
// highlighted.
func (tb TabBar) View() string {
	parts := make([]string, 0, tabCount)
	for i := 0; i < tabCount; i++ {
		tab := Tab(i)
		label := fmt.Sprintf("[%d] %s", i+1, tab.Label())
		if tab == tb.Active {
			parts = append(parts, styleTabActive.Render(label))
		} else {
			parts = append(parts, styleTabInactive.Render(label))
		}
	}
	return styleTabBar.Width(tb.Width).Render(strings.Join(parts, "  "))
}
