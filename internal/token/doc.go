// Package token defines lexical token kinds for the Charj front end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments never appear in the token stream.
//   - Invalid tokens are always accompanied by a lexer diagnostic.
//   - A token stream produced by the lexer ends in exactly one EOF.
package token
