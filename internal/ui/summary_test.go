package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWriteSummaryPlain(t *testing.T) {
	rows := []FileRow{
		{Path: "a.charj"},
		{Path: "b.charj", Diagnostics: 2, Errors: 2},
		{Path: "gone.charj", Diagnostics: 1, Errors: 1, LoadFailed: true},
	}
	totals := Totals{Files: 3, FilesWithErrors: 2, Diagnostics: 3, Errors: 3}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, rows, totals, SummaryOpts{Title: "charj diag", Width: 60}); err != nil {
		t.Fatalf("WriteSummary() error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain summary must not contain escape codes:\n%s", out)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	want := []struct {
		line   int
		prefix string
		suffix string
	}{
		{0, "charj diag", ""},
		{2, "            ok a.charj", ""},
		{3, "         error b.charj", "2 diagnostics"},
		{4, "    unreadable gone.charj", "1 diagnostic"},
		{6, "3 files, 2 with errors, 3 diagnostics", ""},
	}
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	for _, w := range want {
		if !strings.HasPrefix(lines[w.line], w.prefix) || !strings.HasSuffix(lines[w.line], w.suffix) {
			t.Errorf("line %d = %q, want %q ... %q", w.line, lines[w.line], w.prefix, w.suffix)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.charj", 20, "short.charj"},
		{"very/long/path/file.charj", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"名前名前名前", 7, "名前..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && runewidth.StringWidth(got) > tt.width {
			t.Errorf("truncate(%q, %d) is too wide: %q", tt.in, tt.width, got)
		}
	}
}
