package testkit

import (
	"errors"
	"fmt"

	"charj/internal/ast"
	"charj/internal/source"
	"charj/internal/token"
)

// CheckSpanInvariants проверяет спаны разобранного файла:
// 1) корень покрывает весь буфер и указывает на sf
// 2) спан каждого узла лежит внутри спана родителя
// 3) дети идут в порядке исходника и не перекрываются
func CheckSpanInvariants(file *ast.File, sf *source.File) error {
	if file == nil || sf == nil {
		return errors.New("nil file")
	}
	if file.Loc != sf.Span() {
		return fmt.Errorf("root span %v does not cover the buffer %v", file.Loc, sf.Span())
	}
	return checkNode(file, sf.ID)
}

// checkNode обходит дерево по явному стеку: глубина цепочек выражений
// ограничена только памятью.
func checkNode(root ast.Node, id source.FileID) error {
	stack := []ast.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		parent := n.Span()
		if parent.File != id {
			return fmt.Errorf("%s span %v points to file %d, want %d", ast.KindName(n), parent, parent.File, id)
		}
		if parent.End < parent.Start {
			return fmt.Errorf("%s span %v is inverted", ast.KindName(n), parent)
		}

		children := ast.Children(n)
		for i, child := range children {
			sp := child.Span()
			if !parent.Contains(sp) {
				return fmt.Errorf("%s span %v is outside parent %s %v",
					ast.KindName(child), sp, ast.KindName(n), parent)
			}
			if i > 0 && !children[i-1].Span().Before(sp) {
				return fmt.Errorf("%s span %v overlaps or precedes sibling %s %v",
					ast.KindName(child), sp, ast.KindName(children[i-1]), children[i-1].Span())
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}

// CheckTokenStream проверяет поток лексера: токены упорядочены и не
// перекрываются, Text совпадает с исходником под Span, EOF ровно один и последний.
func CheckTokenStream(toks []token.Token, sf *source.File) error {
	if len(toks) == 0 {
		return errors.New("empty token stream")
	}
	var prevEnd uint32
	for i, tok := range toks {
		if tok.Span.File != sf.ID {
			return fmt.Errorf("token %d (%s) points to file %d", i, tok.Kind, tok.Span.File)
		}
		if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || tok.Span.End > sf.Len() {
			return fmt.Errorf("token %d (%s) has bad span %v after offset %d", i, tok.Kind, tok.Span, prevEnd)
		}
		if got := sf.Text(tok.Span); got != tok.Text {
			return fmt.Errorf("token %d (%s) text %q differs from source %q", i, tok.Kind, tok.Text, got)
		}
		isLast := i == len(toks)-1
		if (tok.Kind == token.EOF) != isLast {
			return fmt.Errorf("token %d: EOF must be the last and only EOF token, got %s", i, tok.Kind)
		}
		prevEnd = tok.Span.End
	}
	return nil
}
