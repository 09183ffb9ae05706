package check

import "fmt"

// Severity tags a diagnostic line.
type Severity int

const (
	SeverityLog Severity = iota
	SeverityWarn
	SeverityError
	SeverityDebug
	SeveritySuccess
)

var severityNames = [...]string{
	SeverityLog:     "log",
	SeverityWarn:    "warn",
	SeverityError:   "error",
	SeverityDebug:   "debug",
	SeveritySuccess: "success",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Counts is the number of lines logged per severity for one group.
type Counts struct {
	Log     int `json:"log"`
	Warn    int `json:"warn"`
	Error   int `json:"error"`
	Debug   int `json:"debug"`
	Success int `json:"success"`
}

func (c *Counts) add(s Severity) {
	switch s {
	case SeverityLog:
		c.Log++
	case SeverityWarn:
		c.Warn++
	case SeverityError:
		c.Error++
	case SeverityDebug:
		c.Debug++
	case SeveritySuccess:
		c.Success++
	}
}
