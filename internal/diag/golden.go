package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"charj/internal/source"
)

// goldenLine is one rendered entry; notes become their own lines.
type goldenLine struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set):
//
//	error SYN2001 path:line:col message
//
// Paths are relative to fs.BaseDir(). Lines are sorted by path, position,
// severity, code and message and joined with '\n' without a trailing one.
// Spans pointing outside fs are skipped.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}

	var lines []goldenLine
	for _, d := range diags {
		code := d.Code.ID()
		if l, ok := goldenAt(fs, d.Primary); ok {
			l.sev, l.code, l.msg = d.Severity.Label(), code, flattenMessage(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := goldenAt(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", code, flattenMessage(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b goldenLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			strings.Compare(a.sev, b.sev),
			strings.Compare(a.code, b.code),
			strings.Compare(a.msg, b.msg),
		)
	})
	return strings.Join(lo.Map(lines, func(l goldenLine, _ int) string { return l.String() }), "\n")
}

func goldenAt(fs *source.FileSet, span source.Span) (goldenLine, bool) {
	if int(span.File) >= fs.Len() {
		return goldenLine{}, false
	}
	file := fs.Get(span.File)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return goldenLine{path: path, pos: file.Position(span.Start)}, true
}

// flattenMessage keeps every entry on one line.
func flattenMessage(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
