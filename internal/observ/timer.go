// Package observ measures front-end phases for --timings.
package observ

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Phase is one timed step: load, lex or parse.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string // например "42 tokens"
}

// Timer records phases in start order. It is not safe for concurrent use:
// every file of a directory run owns one, and the CLI merges them afterwards.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin opens a phase; pass the returned index to End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes phase idx. Unknown indices are ignored.
func (t *Timer) End(idx int, note string) {
	if idx >= 0 && idx < len(t.phases) {
		t.phases[idx].Dur = time.Since(t.phases[idx].Start)
		t.phases[idx].Note = note
	}
}

// Merge appends the phases of other with prefix added to each name.
func (t *Timer) Merge(prefix string, other *Timer) {
	if other == nil {
		return
	}
	for _, p := range other.phases {
		p.Name = prefix + p.Name
		t.phases = append(t.phases, p)
	}
}

func (t *Timer) Phases() []Phase { return slices.Clone(t.phases) }

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	total := lo.SumBy(t.phases, func(p Phase) time.Duration { return p.Dur })
	return Report{
		TotalMS: millis(total),
		Phases: lo.Map(t.phases, func(p Phase, _ int) PhaseReport {
			return PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note}
		}),
	}
}

func millis(d time.Duration) float64 { return d.Seconds() * 1000 }

// Summary renders the report as the table printed to stderr:
//
//	timings:
//	  lex                     0.12 ms  // 42 tokens
//	  total                   0.12 ms
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range report.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", report.TotalMS, "")
	return sb.String()
}
