package parser

import (
	"fmt"
	"slices"

	"charj/internal/ast"
	"charj/internal/diag"
	"charj/internal/lexer"
	"charj/internal/source"
	"charj/internal/token"
)

// DefaultMaxNesting bounds recursion over expressions, statements and types.
const DefaultMaxNesting = 256

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	// MaxNesting bounds nesting depth; 0 selects DefaultMaxNesting.
	MaxNesting int
	// MaxTokenLength is forwarded to the lexer by ParseFile.
	MaxTokenLength uint32
	Reporter       diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

func (o *Options) maxNesting() int {
	if o.MaxNesting <= 0 {
		return DefaultMaxNesting
	}
	return o.MaxNesting
}

// Result is the outcome of parsing one buffer. File is never nil.
//
// When no errors were reported the tree is complete. Otherwise it is a
// best-effort tree with Bad* placeholders and must not be compiled.
type Result struct {
	File *ast.File
	// Bag is set when the reporter stores into a diag.Bag; it is sorted by position.
	Bag *diag.Bag
	// Errors counts syntax errors found by the parser, including those cut off by MaxErrors.
	Errors uint
}

// OK reports whether the tree is complete and trustworthy.
func (r Result) OK() bool {
	return r.Errors == 0 && (r.Bag == nil || !r.Bag.HasErrors())
}

// Parser - состояние парсера на один файл
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	depth           int
	nestingReported bool
}

// Parse builds the tree for toks, which must come from file and end with EOF.
// Syntax errors go to opts.Reporter; Parse itself never fails.
func Parse(file *source.File, toks []token.Token, opts Options) Result {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		panic(fmt.Sprintf("parser: token stream for %q does not end with EOF", file.Path))
	}
	p := Parser{
		file:     file,
		toks:     toks,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}

	root := &ast.File{
		Loc:   file.Span(),
		Decls: p.parseDecls(),
	}

	bag := bagOf(opts.Reporter)
	if bag != nil {
		bag.Sort()
	}
	return Result{
		File:   root,
		Bag:    bag,
		Errors: p.opts.CurrentErrors - opts.CurrentErrors,
	}
}

// ParseFile lexes and parses file. Lexer and parser diagnostics share one
// reporter; when opts.Reporter is nil a fresh bag is created and returned.
func ParseFile(file *source.File, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = &diag.BagReporter{Bag: diag.NewBag(int(opts.MaxErrors))}
	}
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter:       opts.Reporter,
		MaxTokenLength: opts.MaxTokenLength,
	})
	return Parse(file, toks, opts)
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch r := r.(type) {
	case *diag.BagReporter:
		return r.Bag
	case diag.BagReporter:
		return r.Bag
	case *diag.DedupReporter:
		return bagOf(r.Next())
	}
	return nil
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// parseDecls - основной цикл верхнего уровня: пока не EOF - parseDecl.
func (p *Parser) parseDecls() []ast.Decl {
	decls := make([]ast.Decl, 0)
	for !p.at(token.EOF) {
		start, before := p.peek().Span, p.pos
		decl, ok := p.parseDecl()
		if !ok {
			p.resyncTop()
			if decl == nil {
				decl = &ast.BadDecl{Loc: p.badSpan(start, before)}
			}
		}
		decls = append(decls, decl)
		if p.pos == before {
			p.advance()
		}
	}
	return decls
}

// parseDecl выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseDecl() (ast.Decl, bool) {
	switch p.peek().Kind {
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwFn:
		return funcDecl(p.parseFuncDecl())
	case token.KwVar, token.KwVal:
		return varDecl(p.parseVarDecl())
	default:
		p.errExpected("declaration")
		return nil, false
	}
}

// funcDecl и varDecl не дают nil-указателю превратиться в не-nil ast.Decl.
func funcDecl(d *ast.FuncDecl, ok bool) (ast.Decl, bool) {
	if d == nil {
		return nil, ok
	}
	return d, ok
}

func varDecl(d *ast.VarDecl, ok bool) (ast.Decl, bool) {
	if d == nil {
		return nil, ok
	}
	return d, ok
}
