package driver

import (
	"context"
	"fmt"
	"strconv"

	"charj/internal/ast"
	"charj/internal/diag"
	"charj/internal/observ"
	"charj/internal/parser"
	"charj/internal/source"
	"charj/internal/trace"
)

// ParseResult is the outcome of parsing one file. Tree is never nil; when
// Bag holds errors it is a best-effort tree with Bad* placeholders.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.File
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// OK reports whether the tree is complete and free of syntax errors.
func (r *ParseResult) OK() bool {
	return r.Bag == nil || !r.Bag.HasErrors()
}

// Parse загружает файл с диска и строит дерево. Ошибка возвращается только
// при проблемах ввода-вывода; синтаксические ошибки попадают в Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts)
}

// ParseSource parses an in-memory buffer registered under name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseFile(ctx, fs, fs.Get(fileID), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*ParseResult, error) {
	bag := diag.NewBag(opts.maxDiagnostics())
	timer := observ.NewTimer()
	res, err := runFrontEnd(ctx, timer, file, bag, opts)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    res.File,
		Bag:     bag,
		Timer:   timer,
	}, nil
}

// runFrontEnd lexes and parses file into bag, timing both phases.
func runFrontEnd(ctx context.Context, timer *observ.Timer, file *source.File, bag *diag.Bag, opts Options) (parser.Result, error) {
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	popts, err := opts.parserOptions(reporter)
	if err != nil {
		return parser.Result{}, err
	}

	toks := lex(ctx, timer, file, opts.lexerOptions(reporter))

	span, _ := trace.BeginCtx(ctx, trace.ScopePass, "parse")
	idx := timer.Begin("parse")
	res := parser.Parse(file, toks, popts)
	note := strconv.Itoa(len(res.File.Decls)) + " decls"
	if res.Errors > 0 {
		note += ", " + strconv.FormatUint(uint64(res.Errors), 10) + " errors"
	}
	timer.End(idx, note)
	span.WithExtra("file", file.Path).End(note)

	bag.Sort()
	return res, nil
}
