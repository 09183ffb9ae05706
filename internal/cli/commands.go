package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nickromney/certcheck/internal/cert"
	"github.com/nickromney/certcheck/internal/check"
	"github.com/nickromney/certcheck/internal/config"
	"github.com/nickromney/certcheck/internal/trace"
)

type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// ViewerFunc shows a finished report interactively.
type ViewerFunc func(r *check.Report, verbose bool) error

type rootOptions struct {
	directory     string
	verbose       bool
	noColor       bool
	json          bool
	workers       int
	timeout       time.Duration
	parser        string
	at            string
	ignoreUnknown bool
	interactive   bool
	logFile       string
	logLevel      string
}

// NewRootCmd creates the cobra root command with all subcommands.
// cfg supplies flag defaults and cfgErr is the error from loading it, if any;
// runViewer backs --interactive and may be nil.
func NewRootCmd(cfg config.Config, cfgErr error, runViewer ViewerFunc, buildInfo BuildInfo) *cobra.Command {
	opts := rootOptions{
		directory:     defaultDirectory(cfg),
		verbose:       cfg.Verbose,
		noColor:       cfg.Color == "never",
		workers:       cfg.Workers,
		timeout:       cfg.Timeout,
		parser:        cfg.Parser,
		ignoreUnknown: !cfg.WarnUnknownExtensions,
		logFile:       cfg.LogFile,
		logLevel:      cfg.LogLevel,
	}

	root := &cobra.Command{
		Use:   "certcheck [DIRECTORY]",
		Short: "Check that certificate, request and key files belong together and are in date",
		Long: "certcheck groups the files in a directory by name (site.crt, site.csr, site.key, site.bundle),\n" +
			"checks that every file in a group carries the same RSA modulus and that certificates are\n" +
			"within their validity window. Each group gets its own verdict.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("directory") && args[0] != opts.directory {
					return usageError(fmt.Sprintf("directory given twice: %q and %q", opts.directory, args[0]))
				}
				opts.directory = args[0]
			}
			return runCheck(cmd, cfg, cfgErr, opts, runViewer)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err.Error())
	})

	f := root.Flags()
	f.StringVarP(&opts.directory, "directory", "d", opts.directory, "directory to scan")
	f.BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "show debug diagnostics")
	f.BoolVar(&opts.noColor, "no-color", opts.noColor, "disable coloured output")
	f.BoolVar(&opts.json, "json", false, "write the report as JSON")
	f.IntVar(&opts.workers, "workers", opts.workers, "groups checked concurrently (0: one per CPU)")
	f.DurationVar(&opts.timeout, "timeout", opts.timeout, "time limit per file")
	f.StringVar(&opts.parser, "parser", opts.parser, "certificate parser: native or openssl")
	f.StringVar(&opts.at, "at", "", "reference instant (RFC3339) instead of now")
	f.BoolVar(&opts.ignoreUnknown, "ignore-unknown", opts.ignoreUnknown, "do not warn about files with unrecognized extensions")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the results in a terminal UI")
	f.StringVar(&opts.logFile, "log-file", opts.logFile, "write the trace log to a file (or stdout/stderr)")
	f.StringVar(&opts.logLevel, "log-level", opts.logLevel, "trace log level")

	root.AddCommand(
		newConfigCmd(),
		newVersionCmd(buildInfo),
	)

	return root
}

func defaultDirectory(cfg config.Config) string {
	if d := strings.TrimSpace(os.Getenv("CERTCHECK_DIR")); d != "" {
		return d
	}
	if cfg.CertsDir != "" {
		return cfg.CertsDir
	}
	return "."
}

func runCheck(cmd *cobra.Command, cfg config.Config, cfgErr error, opts rootOptions, runViewer ViewerFunc) error {
	if opts.json && opts.interactive {
		return usageError("--json and --interactive cannot be combined")
	}
	if opts.interactive && runViewer == nil {
		return usageError("interactive viewer is not available")
	}
	if opts.interactive && !isInteractiveTTY() {
		return usageError("--interactive needs a terminal")
	}
	if opts.timeout < 0 {
		return usageError(fmt.Sprintf("invalid --timeout %s", opts.timeout))
	}

	var at time.Time
	if opts.at != "" {
		t, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return usageError(fmt.Sprintf("invalid --at %q: want RFC3339, e.g. 2030-01-02T15:04:05Z", opts.at))
		}
		at = t
	}

	parser, err := cert.NewParser(opts.parser, cfg.OpenSSLPath)
	if err != nil {
		return usageError(err.Error())
	}

	loc, err := cfg.Location()
	if err != nil {
		return usageError(err.Error())
	}

	if opts.logFile != "" {
		closer, err := trace.Open(opts.logFile, opts.logLevel)
		if err != nil {
			return usageError(fmt.Sprintf("log file: %v", err))
		}
		defer closer.Close()
	}
	if cfgErr != nil {
		trace.Log.Warningf("config: %v (using defaults)", cfgErr)
	}

	colorMode := cfg.Color
	if opts.noColor {
		colorMode = "never"
	}
	lines := newLineRenderer(outStdout, colorEnabled(colorMode, outStdout))

	// JSON and the viewer present group lines themselves; the viewer still
	// lets run-level lines (such as a bad directory) through.
	var sink check.Sink = lines
	switch {
	case opts.json:
		sink = nil
	case opts.interactive:
		sink = check.SinkFunc(func(l check.Line) {
			if l.Group == "" {
				lines.WriteLine(l)
			}
		})
	}
	logger := check.NewLogger(sink, opts.verbose)

	report := check.Run(cmd.Context(), check.Options{
		Directory:   opts.directory,
		Parser:      parser,
		At:          at,
		Location:    loc,
		Timeout:     opts.timeout,
		Workers:     opts.workers,
		WarnUnknown: !opts.ignoreUnknown,
	}, logger)

	switch {
	case opts.json:
		if err := writeJSON(outStdout, report); err != nil {
			return err
		}
	case opts.interactive && report.Fatal == nil:
		if err := runViewer(report, opts.verbose); err != nil {
			return err
		}
	}

	return exitFor(report)
}

func exitFor(r *check.Report) error {
	switch {
	case r.Fatal != nil:
		code := ExitFailed
		if errors.Is(r.Fatal, check.ErrNotDirectory) {
			code = ExitUsage
		}
		return &ExitError{Code: code, Silent: true, Msg: r.Fatal.Error()}
	case r.Failed():
		return &ExitError{Code: ExitFailed, Silent: true, Msg: "validation failed"}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Save(config.Default(), force)
			if err != nil {
				if errors.Is(err, config.ErrExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func newVersionCmd(buildInfo BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "certcheck %s\n", buildInfo.Version)
			fmt.Fprintf(w, "build_time: %s\n", buildInfo.BuildTime)
			fmt.Fprintf(w, "git_commit: %s\n", buildInfo.GitCommit)
		},
	}
}
