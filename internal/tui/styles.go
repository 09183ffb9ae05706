package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/check"
)

var (
	// Colours - lazygit-inspired theme
	accentColor    = lipgloss.Color("#7aa2f7") // blue
	dimColor       = lipgloss.Color("#565f89") // dim gray
	textColor      = lipgloss.Color("#c0caf5") // light text
	bgColor        = lipgloss.Color("#1a1b26") // dark background
	inactiveBorder = lipgloss.Color("#3b4261") // dim for inactive pane
	successColor   = lipgloss.Color("#9ece6a") // green
	errorColor     = lipgloss.Color("#f7768e") // red
	warnColor      = lipgloss.Color("#e0af68") // yellow
	debugColor     = lipgloss.Color("#7dcfff") // cyan

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Pane frames
	paneActiveStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(textColor)
	paneInactiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(inactiveBorder)

	paneHeaderActiveStyle = lipgloss.NewStyle().
				Foreground(bgColor).
				Background(accentColor).
				Bold(true)
	paneHeaderInactiveStyle = lipgloss.NewStyle().
				Foreground(dimColor)

	// Group list
	cursorStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	groupIDStyle = lipgloss.NewStyle().Foreground(textColor)
	passBadge    = lipgloss.NewStyle().Foreground(bgColor).Background(successColor).Bold(true).Render(" PASS ")
	failBadge    = lipgloss.NewStyle().Foreground(bgColor).Background(errorColor).Bold(true).Render(" FAIL ")
	countsStyle  = lipgloss.NewStyle().Foreground(dimColor)

	// Diagnostic lines, one colour per severity as on the command line.
	severityStyles = map[check.Severity]lipgloss.Style{
		check.SeverityLog:     lipgloss.NewStyle().Foreground(textColor),
		check.SeverityWarn:    lipgloss.NewStyle().Foreground(warnColor),
		check.SeverityError:   lipgloss.NewStyle().Foreground(errorColor),
		check.SeverityDebug:   lipgloss.NewStyle().Foreground(debugColor),
		check.SeveritySuccess: lipgloss.NewStyle().Foreground(successColor),
	}
)

func paneStyle(active bool) lipgloss.Style {
	if active {
		return paneActiveStyle
	}
	return paneInactiveStyle
}

func paneHeaderStyle(active bool) lipgloss.Style {
	if active {
		return paneHeaderActiveStyle
	}
	return paneHeaderInactiveStyle
}
