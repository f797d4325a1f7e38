package lexer

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"charj/internal/diag"
	"charj/internal/source"
	"charj/internal/token"
)

// Lexer produces tokens from one file. Whitespace and comments never reach
// the caller; problems go to Options.Reporter and scanning continues.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	peeked  token.Token
	hasPeek bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token. Once EOF is reached every call
// returns EOF again.
func (lx *Lexer) Next() token.Token {
	if lx.hasPeek {
		lx.hasPeek = false
		return lx.peeked
	}
	for {
		// незакрытый блочный комментарий приходит как Invalid
		if tok, ok := lx.skipTrivia(); ok {
			return tok
		}
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.cursor.Here()}
		}
		// false: символ уже зарепорчен и пропущен
		if tok, ok := lx.scan(); ok {
			return lx.checkLength(tok)
		}
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if !lx.hasPeek {
		lx.peeked, lx.hasPeek = lx.Next(), true
	}
	return lx.peeked
}

func (lx *Lexer) scan() (token.Token, bool) {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(), true

	case ch >= utf8.RuneSelf:
		// может быть Unicode-идентификатор
		r, _ := lx.peekRune()
		if isIdentStartRune(r) {
			return lx.scanIdentOrKeyword(), true
		}
		lx.skipUnexpected()
		return token.Token{}, false

	case isDec(ch):
		return lx.scanNumber(), true

	case ch == '"':
		return lx.scanString(), true

	default:
		return lx.scanOperatorOrPunct()
	}
}

// checkLength enforces Options.MaxTokenLength. An oversized token becomes an
// Invalid token covering the rest of the input. Invalid tokens already carry
// their own diagnostic and are left alone.
func (lx *Lexer) checkLength(tok token.Token) token.Token {
	limit := lx.opts.maxTokenLength()
	if tok.Kind == token.Invalid || tok.Span.Len() <= limit {
		return tok
	}
	lx.cursor.SkipToEnd()
	sp := lx.cursor.SpanFrom(Mark(tok.Span.Start))
	lx.errLex(diag.LexTokenTooLong, tok.Span,
		fmt.Sprintf("token too long: %d bytes (limit %d)", tok.Span.Len(), limit))
	return lx.makeToken(token.Invalid, sp)
}

func (lx *Lexer) makeToken(kind token.Kind, sp source.Span) token.Token {
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// Tokenize lexes the whole file. The result always ends with exactly one EOF token.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// All returns the token stream as a lazy sequence ending with EOF.
// Every range over the sequence starts a fresh scan from the beginning of file.
func All(file *source.File, opts Options) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		lx := New(file, opts)
		for {
			tok := lx.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}
