package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nickromney/certcheck/internal/check"
	"github.com/nickromney/certcheck/internal/cli"
	"github.com/nickromney/certcheck/internal/config"
	"github.com/nickromney/certcheck/internal/tui"
)

var (
	// Set via -ldflags at build time.
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	runViewer := func(r *check.Report, verbose bool) error {
		p := tea.NewProgram(tui.New(r, verbose), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	buildInfo := cli.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := cli.NewRootCmd(cfg, err, runViewer, buildInfo)
	err = root.ExecuteContext(ctx)
	stop()
	if err != nil {
		code, silent, ok := cli.ExitCode(err)
		if !ok {
			code = 1
		}
		if !silent {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}
