package driver

import (
	"fmt"

	"fortio.org/safecast"

	"charj/internal/diag"
	"charj/internal/lexer"
	"charj/internal/parser"
)

// DefaultMaxDiagnostics bounds the bag of a single file.
const DefaultMaxDiagnostics = 100

// Options настраивает загрузку и разбор. Нулевое значение использует умолчания.
type Options struct {
	MaxDiagnostics int
	MaxNesting     int
	MaxTokenLength uint32
	// Jobs limits ParseDir workers; 0 means GOMAXPROCS.
	Jobs int
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) lexerOptions(r diag.Reporter) lexer.Options {
	return lexer.Options{Reporter: r, MaxTokenLength: o.MaxTokenLength}
}

func (o Options) parserOptions(r diag.Reporter) (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](o.maxDiagnostics())
	if err != nil {
		return parser.Options{}, fmt.Errorf("max diagnostics: %w", err)
	}
	return parser.Options{
		MaxErrors:      maxErrors,
		MaxNesting:     o.MaxNesting,
		MaxTokenLength: o.MaxTokenLength,
		Reporter:       r,
	}, nil
}
