package diag

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"charj/internal/source"
)

// Bag collects diagnostics up to a limit; limit <= 0 means unlimited.
type Bag struct {
	items []Diagnostic
	limit int
}

func NewBag(limit int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max(limit, 0), 64)), limit: limit}
}

// Add возвращает false, если лимит уже достигнут и d отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if b.Full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Full() bool { return b.limit > 0 && len(b.items) >= b.limit }

// Cap returns the limit; Merge may raise it.
func (b *Bag) Cap() int { return b.limit }

func (b *Bag) Len() int { return len(b.items) }

func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Items returns the backing slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Pointers returns pointers into the bag, the shape FormatGoldenDiagnostics takes.
func (b *Bag) Pointers() []*Diagnostic {
	return lo.Map(b.items, func(_ Diagnostic, i int) *Diagnostic { return &b.items[i] })
}

// Merge appends other. The limit grows when needed so nothing is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	if b.limit > 0 {
		b.limit = max(b.limit, len(b.items))
	}
}

// Sort orders by file, start, end, severity (errors first) and code. Equal
// keys keep insertion order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for every code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	b.items = lo.UniqBy(b.items, func(d Diagnostic) key { return key{d.Code, d.Primary} })
}
