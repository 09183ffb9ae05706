package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// isTerminalFn is overridable in tests.
var isTerminalFn = func(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorEnabled resolves a colour mode ("auto", "always", "never") for w.
// "auto" honours NO_COLOR and only colours terminals.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminalFn(f)
}

func isInteractiveTTY() bool {
	return isTerminalFn(os.Stdin) && isTerminalFn(os.Stdout)
}
