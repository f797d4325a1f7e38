// Package diag holds the diagnostic model shared by the lexer and the parser.
//
// A Diagnostic carries a Severity, a Code with a stable ID (LEX1xxx lexical,
// SYN2xxx syntax, IO4xxx input), a one-line message, the primary span and
// optional notes. Lexer and parser output is always SevError today.
//
// Producers talk to a Reporter. BagReporter stores into a Bag, which enforces
// the diagnostic limit and sorts by position; DedupReporter sits in front of
// it and drops repeats, which recovery can produce when it resynchronises on
// the same token twice. The parser builds diagnostics with ReportError, chains
// WithNote ("block opened here") and calls Emit.
//
// Rendering lives in internal/diagfmt. The only text form here is the golden
// one-line format used by tests and `charj diag --format=short`.
package diag
