package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nickromney/certcheck/internal/check"
)

// outStdout receives diagnostics and JSON; tests swap it for a buffer.
var outStdout io.Writer = os.Stdout

// Severity colours use ANSI base indices so they follow the terminal palette.
var severityColors = map[check.Severity]lipgloss.Color{
	check.SeverityWarn:    lipgloss.Color("3"), // yellow
	check.SeverityError:   lipgloss.Color("1"), // red
	check.SeverityDebug:   lipgloss.Color("6"), // cyan
	check.SeveritySuccess: lipgloss.Color("2"), // green
}

// lineRenderer prints diagnostics as "<SEVERITY>\t| <message>".
type lineRenderer struct {
	w      io.Writer
	styles map[check.Severity]lipgloss.Style
}

func newLineRenderer(w io.Writer, color bool) *lineRenderer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	styles := map[check.Severity]lipgloss.Style{}
	for _, sev := range []check.Severity{
		check.SeverityLog, check.SeverityWarn, check.SeverityError, check.SeverityDebug, check.SeveritySuccess,
	} {
		s := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
		if c, ok := severityColors[sev]; ok {
			s = s.Foreground(c)
		}
		styles[sev] = s
	}
	return &lineRenderer{w: w, styles: styles}
}

func (r *lineRenderer) WriteLine(l check.Line) {
	fmt.Fprintln(r.w, r.styles[l.Severity].Render(formatLine(l)))
}

func formatLine(l check.Line) string {
	return strings.ToUpper(l.Severity.String()) + "\t| " + l.Message
}

func writeJSON(w io.Writer, r *check.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
