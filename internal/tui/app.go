package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/check"
)

// Model browses a finished report: groups on the left, the focused group's
// diagnostics on the right. It never re-runs checks.
type Model struct {
	report  *check.Report
	groups  groupPane
	lines   linePane
	focused PaneID
	width   int
	height  int
}

func New(r *check.Report, verbose bool) Model {
	m := Model{
		report: r,
		groups: newGroupPane(r.Groups),
		lines:  newLinePane(verbose),
	}
	if g, ok := m.groups.Selected(); ok {
		m.lines.SetLines(g.Lines)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.updateWindowSize(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)

	case GroupFocusedMsg:
		if msg.Index >= 0 && msg.Index < len(m.report.Groups) {
			m.lines.SetLines(m.report.Groups[msg.Index].Lines)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layoutPanes()
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Tab):
		m.focused = m.focused.Next()
		return m, nil
	case key.Matches(msg, keys.ShiftTab):
		m.focused = m.focused.Prev()
		return m, nil
	case key.Matches(msg, keys.Verbose):
		m.lines.ToggleVerbose()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focused {
	case PaneGroups:
		cmd = m.groups.Update(msg)
	case PaneLines:
		cmd = m.lines.Update(msg)
	}
	return m, cmd
}

// paneLayout splits the screen (status bar excluded) into the outer widths
// of the two panes and the inner body height shared by both.
func (m Model) paneLayout() (groupW, lineW, bodyH int) {
	groupW = min(max(m.width/3, 24), max(0, m.width-20))
	lineW = max(0, m.width-groupW)
	// border (2) + header row (1) + status bar (1)
	bodyH = max(0, m.height-4)
	return groupW, lineW, bodyH
}

func (m *Model) layoutPanes() {
	groupW, lineW, bodyH := m.paneLayout()
	m.groups.SetSize(max(0, groupW-2), bodyH)
	m.lines.SetSize(max(0, lineW-2), bodyH)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	groupW, lineW, bodyH := m.paneLayout()

	groupTitle := "[1] Groups"
	lineTitle := "[2] Diagnostics"
	if g, ok := m.groups.Selected(); ok {
		lineTitle += ": " + g.ID
	}

	left := m.renderPane(PaneGroups, groupTitle, strings.Join(m.groups.View(), "\n"), groupW, bodyH)
	right := m.renderPane(PaneLines, lineTitle, m.lines.View(), lineW, bodyH)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderStatusBar(),
	)
}

func (m Model) renderPane(id PaneID, title, body string, outerW, bodyH int) string {
	active := m.focused == id
	innerW := max(0, outerW-2)
	header := paneHeaderStyle(active).Render(truncate(title, innerW))
	return paneStyle(active).
		Width(innerW).
		Height(bodyH + 1).
		Render(header + "\n" + body)
}

func (m Model) renderStatusBar() string {
	var parts []string

	add := func(b key.Binding) {
		h := b.Help()
		parts = append(parts, statusKeyStyle.Render(h.Key)+" "+statusDescStyle.Render(h.Desc))
	}
	add(keys.Tab)
	add(keys.Down)
	add(keys.Up)
	add(keys.Verbose)
	add(keys.Quit)

	left := strings.Join(parts, "  ")

	failed := 0
	for _, g := range m.report.Groups {
		if g.Verdict == check.VerdictFailed {
			failed++
		}
	}
	debug := "off"
	if m.lines.verbose {
		debug = "on"
	}
	right := strings.Join([]string{
		statusDescStyle.Render("groups: ") + statusKeyStyle.Render(fmt.Sprint(len(m.report.Groups))),
		statusDescStyle.Render("failed: ") + statusKeyStyle.Render(fmt.Sprint(failed)),
		statusDescStyle.Render("debug: ") + statusKeyStyle.Render(debug),
	}, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}
