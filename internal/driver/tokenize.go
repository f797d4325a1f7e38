package driver

import (
	"context"
	"fmt"
	"strconv"

	"charj/internal/diag"
	"charj/internal/lexer"
	"charj/internal/observ"
	"charj/internal/source"
	"charj/internal/token"
	"charj/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// Tokenize загружает файл с диска и разбивает его на токены.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), opts), nil
}

// TokenizeSource tokenizes an in-memory buffer such as stdin.
func TokenizeSource(ctx context.Context, name string, src []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return tokenizeFile(ctx, fs, fs.Get(fileID), opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	timer := observ.NewTimer()

	toks := lex(ctx, timer, file, opts.lexerOptions(&diag.BagReporter{Bag: bag}))
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Bag:     bag,
		Timer:   timer,
	}
}

// lex runs the lexer phase under a trace span and a timer phase.
func lex(ctx context.Context, timer *observ.Timer, file *source.File, opts lexer.Options) []token.Token {
	span, _ := trace.BeginCtx(ctx, trace.ScopePass, "lex")
	idx := timer.Begin("lex")

	toks := lexer.Tokenize(file, opts)

	note := strconv.Itoa(len(toks)) + " tokens"
	timer.End(idx, note)
	span.WithExtra("file", file.Path).End(note)
	return toks
}
