package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"charj/internal/source"
	"charj/internal/token"
)

type TokenOutput struct {
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Col       uint32 `json:"col,omitempty"`
}

// BuildTokensOutput converts tokens up to and including EOF. Positions are
// filled only when fs is non-nil.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			tokens = tokens[:i+1]
			break
		}
	}
	return lo.Map(tokens, func(tok token.Token, _ int) TokenOutput {
		out := TokenOutput{
			Kind:      tok.Kind.String(),
			Text:      tok.Text,
			StartByte: tok.Span.Start,
			EndByte:   tok.Span.End,
		}
		if fs != nil {
			pos, _ := fs.Resolve(tok.Span)
			out.Line, out.Col = pos.Line, pos.Col
		}
		return out
	})
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		line := fmt.Sprintf("%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, fs))
}

// FormatTokensMsgpack пишет поток токенов в msgpack.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	return newMsgpackEncoder(w).Encode(BuildTokensOutput(tokens, fs))
}
