package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"charj/internal/diag"
	"charj/internal/source"
)

type styles struct {
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	code   *color.Color
	path   *color.Color
	gutter *color.Color
	marker *color.Color
	note   *color.Color
}

func newStyles(enabled bool) styles {
	s := styles{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		marker: color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{s.err, s.warn, s.info, s.code, s.path, s.gutter, s.marker, s.note} {
		// глобальный color.NoColor не должен влиять на Render
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s styles) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return s.err
	case diag.SevWarning:
		return s.warn
	default:
		return s.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает заголовок <path>:<line>:<col>: <sev>[<CODE>]: <message>,
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	for _, d := range bag.Items() {
		var file *source.File
		if int(d.Primary.File) < fs.Len() {
			file = fs.Get(d.Primary.File)
		}
		if _, err := io.WriteString(w, renderWith(file, fs, &d, opts)); err != nil {
			return err
		}
	}
	return nil
}

// Render formats one diagnostic against the file its primary span points into.
// The result ends with a newline and depends only on its arguments.
func Render(file *source.File, d *diag.Diagnostic, opts PrettyOpts) string {
	return renderWith(file, nil, d, opts)
}

func renderWith(file *source.File, fs *source.FileSet, d *diag.Diagnostic, opts PrettyOpts) string {
	st := newStyles(opts.Color)
	var b strings.Builder

	sev := st.severity(d.Severity)
	header := sev.Sprint(d.Severity.Label()) + st.code.Sprintf("[%s]", d.Code.ID())
	if file == nil {
		fmt.Fprintf(&b, "%s: %s\n", header, d.Message)
	} else {
		start := file.Position(d.Primary.Start)
		loc := fmt.Sprintf("%s:%d:%d", pathOf(file, fs, opts.PathMode), start.Line, start.Col)
		fmt.Fprintf(&b, "%s: %s: %s\n", st.path.Sprint(loc), header, d.Message)
		// у пустого файла (например, не загрузившегося) показывать нечего
		if len(file.Content) > 0 {
			writeSnippet(&b, st, file, d.Primary, int(opts.Context))
		}
	}

	if !opts.ShowNotes {
		return b.String()
	}
	for _, note := range d.Notes {
		if file == nil || note.Span.File != file.ID {
			fmt.Fprintf(&b, "  %s: %s\n", st.note.Sprint("note"), note.Msg)
			continue
		}
		pos := file.Position(note.Span.Start)
		loc := fmt.Sprintf("%s:%d:%d", pathOf(file, fs, opts.PathMode), pos.Line, pos.Col)
		fmt.Fprintf(&b, "  %s: %s: %s\n", st.note.Sprint("note"), st.path.Sprint(loc), note.Msg)
		writeSnippet(&b, st, file, note.Span, 0)
	}
	return b.String()
}

func pathOf(file *source.File, fs *source.FileSet, mode PathMode) string {
	baseDir := ""
	if fs != nil {
		baseDir = fs.BaseDir()
	}
	switch mode {
	case PathModeAbsolute:
		return file.FormatPath("absolute", "")
	case PathModeRelative:
		return file.FormatPath("relative", baseDir)
	case PathModeBasename:
		return file.FormatPath("basename", "")
	default:
		return file.FormatPath("auto", "")
	}
}

// writeSnippet prints context lines, the line holding sp.Start and a marker under sp.
// A span crossing a line break is marked up to the end of its first line.
func writeSnippet(b *strings.Builder, st styles, file *source.File, sp source.Span, context int) {
	start := file.Position(sp.Start)
	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first = start.Line - uint32(context)
		}
	}
	gw := len(strconv.FormatUint(uint64(start.Line), 10))

	for n := first; n <= start.Line; n++ {
		fmt.Fprintf(b, "%s %s\n", st.gutter.Sprintf("%*d |", gw, n), file.GetLine(n))
	}

	line := file.GetLine(start.Line)
	prefix := leadingRunes(line, int(start.Col)-1)
	lineStart := sp.Start - uint32(len(prefix))
	end := len(line)
	if sp.End >= lineStart && int(sp.End-lineStart) < end {
		end = int(sp.End - lineStart)
	}
	end = max(end, len(prefix))

	fmt.Fprintf(b, "%s %s%s\n",
		st.gutter.Sprintf("%*s |", gw, ""),
		padFor(prefix),
		st.marker.Sprint(marker(displayWidth(line[len(prefix):end]))),
	)
}

func leadingRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for off := range s {
		if i == n {
			return s[:off]
		}
		i++
	}
	return s
}

// padFor returns whitespace occupying the same terminal columns as s; tabs are kept.
func padFor(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w++
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

func marker(width int) string {
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}
