package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"charj/internal/config"
	"charj/internal/driver"
	"charj/internal/trace"
	"charj/internal/version"
)

// Коды выхода: 0 - чисто, 1 - есть ошибки в диагностиках, 2 - сбой CLI или ввода-вывода.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitFailure     = 2
)

// errHasErrors is returned by a command whose input produced error diagnostics.
// The diagnostics are already printed, so main only sets the exit code.
var errHasErrors = errors.New("input has errors")

// stdinName is the path under which "-" input is registered.
const stdinName = "<stdin>"

// app holds the state shared by one CLI invocation.
type app struct {
	stdin    io.Reader
	stderr   io.Writer
	cfg      config.Config
	cfgPath  string
	tracer   trace.Tracer
	cleanups []func()
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the CLI and maps the outcome onto an exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stderr: stderr, cfg: config.Default(), tracer: trace.Nop}
	defer a.close()
	defer a.dumpTraceOnPanic()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errHasErrors):
		return exitDiagnostics
	default:
		fmt.Fprintf(stderr, "charj: %v\n", err)
		return exitFailure
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "charj",
		Short: "Charj language front end",
		Long: `charj tokenizes and parses Charj source files and reports syntax
diagnostics. Settings are read from the nearest charj.toml; flags override them.`,
		Version:           version.Current().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics per file")
	pf.String("config", "", "path to charj.toml (default: nearest one above the working directory)")

	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(newTokenizeCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newDiagCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// close runs cleanups in reverse registration order.
func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// dumpTraceOnPanic печатает содержимое ring-буфера трассировки и паникует дальше.
func (a *app) dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if ring := ringOf(a.tracer); ring != nil {
		fmt.Fprintln(a.stderr, "trace: last events before panic:")
		_ = ring.Dump(a.stderr, trace.FormatText)
	}
	panic(r)
}

func ringOf(t trace.Tracer) *trace.RingTracer {
	switch tr := t.(type) {
	case *trace.RingTracer:
		return tr
	case *trace.MultiTracer:
		if ring, ok := tr.Ring(); ok {
			return ring
		}
	}
	return nil
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
