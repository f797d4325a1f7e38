package lexer

import (
	"charj/internal/diag"
	"charj/internal/source"
)

// DefaultMaxTokenLength ограничивает длину одного токена (1 MiB).
const DefaultMaxTokenLength = 1 << 20

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	// MaxTokenLength bounds a single token in bytes; 0 selects DefaultMaxTokenLength.
	MaxTokenLength uint32
}

func (o Options) maxTokenLength() uint32 {
	if o.MaxTokenLength == 0 {
		return DefaultMaxTokenLength
	}
	return o.MaxTokenLength
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
