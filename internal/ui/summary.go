// Package ui renders the per-file status list printed after a directory run.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// FileRow is one line of the status list.
type FileRow struct {
	Path        string
	Diagnostics int
	Errors      int
	LoadFailed  bool
}

// Totals is the footer of the status list.
type Totals struct {
	Files           int
	FilesWithErrors int
	Diagnostics     int
	Errors          int
}

const statusWidth = 12

// SummaryOpts управляет оформлением сводки.
type SummaryOpts struct {
	Title string
	Width int // ширина терминала, 0 = 80
	Color bool
}

type palette struct {
	title, ok, failed, dim lipgloss.Style
}

func newPalette(r *lipgloss.Renderer, enabled bool) palette {
	if !enabled {
		plain := r.NewStyle()
		return palette{plain, plain, plain, plain}
	}
	return palette{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		failed: r.NewStyle().Foreground(lipgloss.Color("1")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// WriteSummary печатает заголовок, по строке на файл и итог.
func WriteSummary(w io.Writer, rows []FileRow, totals Totals, opts SummaryOpts) error {
	p := newPalette(lipgloss.NewRenderer(w), opts.Color)

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	nameWidth := max(width-statusWidth-24, 20)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(p.title.Render(opts.Title))
		b.WriteString("\n\n")
	}
	for _, row := range rows {
		status, style := statusOf(row, p)
		fmt.Fprintf(&b, "  %s %s", style.Render(fmt.Sprintf("%*s", statusWidth, status)), padRight(truncate(row.Path, nameWidth), nameWidth))
		if detail := detailOf(row); detail != "" {
			b.WriteString("  ")
			b.WriteString(p.dim.Render(detail))
		}
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("%d %s, %d with errors, %d %s",
		totals.Files, plural(totals.Files, "file", "files"),
		totals.FilesWithErrors,
		totals.Diagnostics, plural(totals.Diagnostics, "diagnostic", "diagnostics"))
	b.WriteString("\n")
	if totals.Errors > 0 {
		b.WriteString(p.failed.Render(footer))
	} else {
		b.WriteString(p.ok.Render(footer))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func statusOf(row FileRow, p palette) (string, lipgloss.Style) {
	switch {
	case row.LoadFailed:
		return "unreadable", p.failed
	case row.Errors > 0:
		return "error", p.failed
	default:
		return "ok", p.ok
	}
}

func detailOf(row FileRow) string {
	if row.Diagnostics == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s", row.Diagnostics, plural(row.Diagnostics, "diagnostic", "diagnostics"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func padRight(value string, width int) string {
	if pad := width - runewidth.StringWidth(value); pad > 0 {
		return value + strings.Repeat(" ", pad)
	}
	return value
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
