package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"charj/internal/diag"
	"charj/internal/diagfmt"
	"charj/internal/driver"
	"charj/internal/observ"
	"charj/internal/source"
	"charj/internal/ui"
)

func newDiagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.charj|directory|->",
		Short: "Report syntax diagnostics for a file or directory",
		Long: `Diag parses a Charj source file, stdin ("-") or every *.charj file under a
directory and reports the diagnostics. Exit status is 1 when any error is found.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runDiag,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|msgpack)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Int("context", 1, "source lines shown before the error line")
	cmd.Flags().Bool("notes", true, "include diagnostic notes in output")
	cmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
	return cmd
}

// diagRun is what runDiag renders: one file or a whole directory.
type diagRun struct {
	fileSet *source.FileSet
	bag     *diag.Bag
	timer   *observ.Timer
	dir     *driver.DirResult // nil for a single file
	root    string
}

func (a *app) runDiag(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if err := checkFormat(format, "pretty", "short", "json", "msgpack"); err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	run, err := a.collectDiagnostics(cmd, args[0], opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "short":
		err = writeShort(out, cmd, run)
	case "json", "msgpack":
		err = a.writeStructured(cmd, out, format, run)
	default:
		err = a.writePretty(cmd, out, run)
	}
	if err != nil {
		return err
	}
	if err := a.printTimings(cmd, run.timer); err != nil {
		return err
	}
	if run.bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func (a *app) collectDiagnostics(cmd *cobra.Command, target string, opts driver.Options) (*diagRun, error) {
	ctx := cmd.Context()
	if target == "-" {
		src, err := a.readStdin()
		if err != nil {
			return nil, err
		}
		res, err := driver.ParseSource(ctx, stdinName, src, opts)
		if err != nil {
			return nil, fmt.Errorf("diagnosis failed: %w", err)
		}
		return &diagRun{fileSet: res.FileSet, bag: res.Bag, timer: res.Timer}, nil
	}

	st, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !st.IsDir() {
		res, err := driver.Parse(ctx, target, opts)
		if err != nil {
			return nil, fmt.Errorf("diagnosis failed: %w", err)
		}
		return &diagRun{fileSet: res.FileSet, bag: res.Bag, timer: res.Timer}, nil
	}

	dirRes, err := driver.ParseDir(ctx, target, opts)
	if err != nil {
		return nil, fmt.Errorf("diagnosis failed: %w", err)
	}
	timer := observ.NewTimer()
	for _, f := range dirRes.Files {
		timer.Merge(relPath(target, f.Path)+": ", f.Timer)
	}
	return &diagRun{fileSet: dirRes.FileSet, bag: dirRes.Bag(), timer: timer, dir: dirRes, root: target}, nil
}

func (a *app) writePretty(cmd *cobra.Command, out io.Writer, run *diagRun) error {
	opts, err := a.prettyOpts(cmd, out)
	if err != nil {
		return err
	}
	if err := diagfmt.Pretty(out, run.bag, run.fileSet, opts); err != nil {
		return err
	}
	if run.dir == nil || a.quiet(cmd) {
		return nil
	}

	summary := run.dir.Summary()
	rows := lo.Map(run.dir.Files, func(f driver.ParseDirResult, _ int) ui.FileRow {
		row := ui.FileRow{Path: relPath(run.root, f.Path), LoadFailed: f.Tree == nil}
		if f.Bag != nil {
			row.Diagnostics = f.Bag.Len()
			row.Errors = len(lo.Filter(f.Bag.Items(), func(d diag.Diagnostic, _ int) bool { return d.Severity >= diag.SevError }))
		}
		return row
	})
	if run.bag.Len() > 0 {
		fmt.Fprintln(out)
	}
	return ui.WriteSummary(out, rows, ui.Totals(summary), ui.SummaryOpts{
		Title: "charj diag " + run.root,
		Width: terminalWidth(out),
		Color: opts.Color,
	})
}

func writeShort(out io.Writer, cmd *cobra.Command, run *diagRun) error {
	notes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return fmt.Errorf("failed to get notes flag: %w", err)
	}
	text := diag.FormatGoldenDiagnostics(run.bag.Pointers(), run.fileSet, notes)
	if text == "" {
		return nil
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func (a *app) writeStructured(cmd *cobra.Command, out io.Writer, format string, run *diagRun) error {
	pretty, err := a.prettyOpts(cmd, out)
	if err != nil {
		return err
	}
	opts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pretty.PathMode,
		IncludeNotes:     pretty.ShowNotes,
	}
	if format == "msgpack" {
		return diagfmt.Msgpack(out, run.bag, run.fileSet, opts)
	}
	return diagfmt.JSON(out, run.bag, run.fileSet, opts)
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
