package check

import (
	"fmt"
	"sync"
)

// Line is one diagnostic. Group is empty for run-level lines.
type Line struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Group    string   `json:"group,omitempty"`
}

// Sink displays diagnostic lines.
type Sink interface {
	WriteLine(Line)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Line)

func (f SinkFunc) WriteLine(l Line) { f(l) }

// Logger forwards lines to a Sink, hiding debug lines unless verbose.
// Visibility never changes what a GroupLog counts.
type Logger struct {
	mu      sync.Mutex
	sink    Sink
	verbose bool
}

// NewLogger returns a Logger writing to sink. A nil sink discards output.
func NewLogger(sink Sink, verbose bool) *Logger {
	return &Logger{sink: sink, verbose: verbose}
}

// Logf emits a run-level line immediately. Run-level lines are not counted.
func (l *Logger) Logf(sev Severity, format string, args ...any) {
	l.emit(Line{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Group starts a private, buffered log for one certificate group.
func (l *Logger) Group(id string) *GroupLog {
	return &GroupLog{id: id}
}

// Flush emits a group's buffered lines in the order they were logged.
func (l *Logger) Flush(g *GroupLog) {
	for _, line := range g.lines {
		l.emit(line)
	}
}

func (l *Logger) emit(line Line) {
	if l == nil || l.sink == nil {
		return
	}
	if line.Severity == SeverityDebug && !l.verbose {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.WriteLine(line)
}

// GroupLog buffers the lines of one group and counts them by severity.
// It is owned by a single goroutine until flushed.
type GroupLog struct {
	id     string
	counts Counts
	lines  []Line
}

// Logf records a counted line, prefixed with the group identifier.
func (g *GroupLog) Logf(sev Severity, format string, args ...any) {
	g.counts.add(sev)
	g.append(sev, format, args...)
}

// notef records a line without counting it; used for the verdict summary.
func (g *GroupLog) notef(sev Severity, format string, args ...any) {
	g.append(sev, format, args...)
}

func (g *GroupLog) append(sev Severity, format string, args ...any) {
	g.lines = append(g.lines, Line{
		Severity: sev,
		Message:  fmt.Sprintf("[%s] ", g.id) + fmt.Sprintf(format, args...),
		Group:    g.id,
	})
}

func (g *GroupLog) Counts() Counts { return g.counts }

func (g *GroupLog) Lines() []Line { return append([]Line(nil), g.lines...) }
