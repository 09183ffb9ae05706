package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/check"
)

// groupPane lists the groups of a report with their verdicts.
type groupPane struct {
	groups []check.Outcome
	cursor int
	offset int // scroll offset
	width  int
	height int
}

func newGroupPane(groups []check.Outcome) groupPane {
	return groupPane{groups: groups}
}

func (gp *groupPane) SetSize(w, h int) {
	gp.width = w
	gp.height = h
	gp.ensureVisible()
}

// Selected returns the focused group, or false when the report is empty.
func (gp *groupPane) Selected() (check.Outcome, bool) {
	if len(gp.groups) == 0 {
		return check.Outcome{}, false
	}
	return gp.groups[gp.cursor], true
}

func (gp *groupPane) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(gp.groups) == 0 {
		return nil
	}

	prev := gp.cursor
	last := len(gp.groups) - 1
	switch {
	case key.Matches(km, keys.Up):
		gp.cursor = max(0, gp.cursor-1)
	case key.Matches(km, keys.Down):
		gp.cursor = min(last, gp.cursor+1)
	case key.Matches(km, keys.HalfPageDown):
		gp.cursor = min(last, gp.cursor+max(1, gp.height/2))
	case key.Matches(km, keys.HalfPageUp):
		gp.cursor = max(0, gp.cursor-max(1, gp.height/2))
	case key.Matches(km, keys.PageDown):
		gp.cursor = min(last, gp.cursor+max(1, gp.height))
	case key.Matches(km, keys.PageUp):
		gp.cursor = max(0, gp.cursor-max(1, gp.height))
	case key.Matches(km, keys.Top):
		gp.cursor = 0
	case key.Matches(km, keys.Bottom):
		gp.cursor = last
	}
	gp.ensureVisible()

	if gp.cursor == prev {
		return nil
	}
	idx := gp.cursor
	return func() tea.Msg {
		return GroupFocusedMsg{Index: idx}
	}
}

func (gp *groupPane) ensureVisible() {
	visibleHeight := gp.height
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if gp.cursor < gp.offset {
		gp.offset = gp.cursor
	}
	if gp.cursor >= gp.offset+visibleHeight {
		gp.offset = gp.cursor - visibleHeight + 1
	}
}

// View renders the visible rows, one group per row.
func (gp *groupPane) View() []string {
	if len(gp.groups) == 0 {
		return []string{countsStyle.Render("No certificate groups found")}
	}

	end := min(len(gp.groups), gp.offset+max(1, gp.height))
	rows := make([]string, 0, end-gp.offset)
	for i := gp.offset; i < end; i++ {
		g := gp.groups[i]

		pointer := "  "
		if i == gp.cursor {
			pointer = cursorStyle.Render("> ")
		}
		badge := passBadge
		if g.Verdict == check.VerdictFailed {
			badge = failBadge
		}
		counts := countsStyle.Render(fmt.Sprintf(" %dE %dW", g.Counts.Error, g.Counts.Warn))

		idW := gp.width - lipgloss.Width(pointer) - lipgloss.Width(badge) - lipgloss.Width(counts) - 1
		rows = append(rows, pointer+badge+" "+groupIDStyle.Render(truncate(g.ID, idW))+counts)
	}
	return rows
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
