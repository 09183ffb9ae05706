// Package trace is the operational log: parser invocations, timings and
// config problems. It is separate from the diagnostic report and is
// discarded unless a log file is configured.
package trace

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

var Log = logging.MustGetLogger("certcheck")

var format = logging.MustStringFormatter(
	"%{time:15:04:05.000} %{shortfunc} ▶ %{level:.4s} %{id:03x} %{message}",
)

func init() {
	logging.SetBackend(logging.NewLogBackend(io.Discard, "", 0))
}

// Setup routes the trace log to w at the given level name
// (DEBUG, INFO, NOTICE, WARNING, ERROR, CRITICAL).
func Setup(w io.Writer, level string) error {
	if level == "" {
		level = "INFO"
	}
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return err
	}

	backend := logging.NewLogBackend(w, "", 0)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(logging.NewBackendFormatter(leveled, format))
	return nil
}

// Open resolves output ("stdout", "stderr" or a file path, appended to) and
// calls Setup. The returned closer is a no-op for the standard streams.
func Open(output, level string) (io.Closer, error) {
	var w io.WriteCloser
	switch output {
	case "", "stderr":
		w = nopCloser{os.Stderr}
	case "stdout":
		w = nopCloser{os.Stdout}
	default:
		f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}
	if err := Setup(w, level); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
