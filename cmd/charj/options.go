package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"charj/internal/diag"
	"charj/internal/diagfmt"
	"charj/internal/driver"
	"charj/internal/observ"
	"charj/internal/source"
)

// driverOptions merges charj.toml with --max-diagnostics and, when the
// command has it, --jobs.
func (a *app) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: a.cfg.Frontend.MaxDiagnostics,
		MaxNesting:     a.cfg.Frontend.MaxNesting,
		MaxTokenLength: a.cfg.Frontend.MaxTokenLength,
	}
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		opts.MaxDiagnostics = n
	}
	if cmd.Flags().Lookup("jobs") != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = jobs
	}
	return opts, nil
}

// useColor resolves --color (or output.color from charj.toml) for w.
func (a *app) useColor(cmd *cobra.Command, w io.Writer) bool {
	mode := a.cfg.Output.Color
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("color") {
		mode, _ = flags.GetString("color")
	}
	return resolveColor(mode, w)
}

func resolveColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(w)
	}
}

// prettyOpts собирает опции pretty-вывода; локальные флаги команды
// (--context, --path-mode, --notes) перекрывают charj.toml.
func (a *app) prettyOpts(cmd *cobra.Command, w io.Writer) (diagfmt.PrettyOpts, error) {
	contextLines := a.cfg.Output.Context
	pathModeStr := a.cfg.Output.PathMode
	showNotes := true

	flags := cmd.Flags()
	if flags.Changed("context") {
		n, err := flags.GetInt("context")
		if err != nil {
			return diagfmt.PrettyOpts{}, fmt.Errorf("failed to get context flag: %w", err)
		}
		contextLines = n
	}
	if flags.Changed("path-mode") {
		s, err := flags.GetString("path-mode")
		if err != nil {
			return diagfmt.PrettyOpts{}, fmt.Errorf("failed to get path-mode flag: %w", err)
		}
		pathModeStr = s
	}
	if flags.Lookup("notes") != nil {
		b, err := flags.GetBool("notes")
		if err != nil {
			return diagfmt.PrettyOpts{}, fmt.Errorf("failed to get notes flag: %w", err)
		}
		showNotes = b
	}

	ctxLines, err := safecast.Conv[int8](contextLines)
	if err != nil || ctxLines < 0 {
		return diagfmt.PrettyOpts{}, fmt.Errorf("invalid context value %d (expected 0..127)", contextLines)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	return diagfmt.PrettyOpts{
		Color:     a.useColor(cmd, w),
		Context:   ctxLines,
		PathMode:  pathMode,
		ShowNotes: showNotes,
	}, nil
}

// reportDiagnostics prints bag to w in pretty form; nothing is printed for an empty bag.
func (a *app) reportDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	opts, err := a.prettyOpts(cmd, w)
	if err != nil {
		return err
	}
	return diagfmt.Pretty(w, bag, fs, opts)
}

func (a *app) printTimings(cmd *cobra.Command, timer *observ.Timer) error {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if show && timer != nil {
		_, err = io.WriteString(cmd.ErrOrStderr(), timer.Summary())
	}
	return err
}

func (a *app) quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// readStdin reads the whole of stdin for a "-" argument.
func (a *app) readStdin() ([]byte, error) {
	src, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return src, nil
}

// checkFormat rejects a --format value before any work is done.
func checkFormat(format string, allowed ...string) error {
	if lo.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unknown format %q (expected %s)", format, strings.Join(allowed, "|"))
}
