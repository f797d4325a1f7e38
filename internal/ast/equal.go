package ast

import (
	"charj/internal/source"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var ignoreSpans = cmp.Options{
	cmpopts.IgnoreTypes(source.Span{}),
	cmpopts.EquateEmpty(),
}

// Equal reports whether two trees are structurally identical, spans included.
func Equal(a, b Node) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// EqualIgnoreSpans compares two trees ignoring every source span. Golden-tree
// tests build expected trees by hand and compare them with this.
func EqualIgnoreSpans(a, b Node) bool {
	return cmp.Equal(a, b, ignoreSpans)
}

// Diff returns a human-readable difference between two trees ignoring spans,
// or "" when they are equal.
func Diff(want, got Node) string {
	return cmp.Diff(want, got, ignoreSpans)
}
