package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/check"
)

// linePane shows the diagnostics of one group. Debug lines are only shown
// when verbose is on; toggling never alters the group's counts or verdict.
type linePane struct {
	viewport viewport.Model
	lines    []check.Line
	verbose  bool
	width    int
	height   int
}

func newLinePane(verbose bool) linePane {
	return linePane{viewport: viewport.New(0, 0), verbose: verbose}
}

func (lp *linePane) SetSize(w, h int) {
	lp.width = max(0, w)
	lp.height = max(0, h)
	lp.viewport.Width = lp.width
	lp.viewport.Height = lp.height
}

func (lp *linePane) SetLines(lines []check.Line) {
	lp.lines = lines
	lp.refresh()
	lp.viewport.GotoTop()
}

func (lp *linePane) ToggleVerbose() {
	lp.verbose = !lp.verbose
	lp.refresh()
}

// Visible returns the lines currently displayed.
func (lp *linePane) Visible() []check.Line {
	out := make([]check.Line, 0, len(lp.lines))
	for _, l := range lp.lines {
		if l.Severity == check.SeverityDebug && !lp.verbose {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (lp *linePane) refresh() {
	visible := lp.Visible()
	rows := make([]string, 0, len(visible))
	for _, l := range visible {
		text := fmt.Sprintf("%-7s| %s", strings.ToUpper(l.Severity.String()), l.Message)
		rows = append(rows, severityStyles[l.Severity].Render(text))
	}
	lp.viewport.SetContent(strings.Join(rows, "\n"))
}

func (lp *linePane) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, keys.Down):
		lp.viewport.LineDown(1)
	case key.Matches(km, keys.Up):
		lp.viewport.LineUp(1)
	case key.Matches(km, keys.HalfPageDown):
		lp.viewport.HalfViewDown()
	case key.Matches(km, keys.HalfPageUp):
		lp.viewport.HalfViewUp()
	case key.Matches(km, keys.PageDown):
		lp.viewport.ViewDown()
	case key.Matches(km, keys.PageUp):
		lp.viewport.ViewUp()
	case key.Matches(km, keys.Top):
		lp.viewport.GotoTop()
	case key.Matches(km, keys.Bottom):
		lp.viewport.GotoBottom()
	}
	return nil
}

func (lp *linePane) View() string {
	return lipgloss.NewStyle().Width(lp.width).Height(lp.height).Render(lp.viewport.View())
}
