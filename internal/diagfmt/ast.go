package diagfmt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/k0kubun/pp"

	"charj/internal/ast"
	"charj/internal/source"
)

type ASTNodeOutput struct {
	Type      string            `json:"type"`
	StartByte uint32            `json:"start_byte"`
	EndByte   uint32            `json:"end_byte"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Children  []ASTNodeOutput   `json:"children,omitempty"`
}

// BuildASTOutput converts a tree into its serializable form.
// Обход идет по явному стеку, глубина дерева ничем не ограничена.
func BuildASTOutput(n ast.Node) ASTNodeOutput {
	type frame struct {
		out  ASTNodeOutput
		kids []ast.Node
		next int
	}
	stack := []frame{{out: astNodeHead(n), kids: ast.Children(n)}}
	for {
		top := &stack[len(stack)-1]
		if top.next < len(top.kids) {
			c := top.kids[top.next]
			top.next++
			stack = append(stack, frame{out: astNodeHead(c), kids: ast.Children(c)})
			continue
		}
		done := top.out
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return done
		}
		parent := &stack[len(stack)-1].out
		parent.Children = append(parent.Children, done)
	}
}

func astNodeHead(n ast.Node) ASTNodeOutput {
	sp := n.Span()
	out := ASTNodeOutput{
		Type:      ast.KindName(n),
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if attrs := ast.Attrs(n); len(attrs) > 0 {
		out.Attrs = make(map[string]string, len(attrs))
		for _, a := range attrs {
			out.Attrs[a.Key] = a.Value
		}
	}
	return out
}

// FormatASTPretty печатает дерево с отступами:
//
//	File 1:1-3:2
//	└─ FuncDecl 1:1-3:2
//	   ├─ Ident name="main" 1:4-1:8
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	type item struct {
		node        ast.Node
		first, rest string
	}
	var b strings.Builder
	stack := []item{{node: file}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b.WriteString(it.first)
		b.WriteString(nodeLabel(it.node))
		b.WriteByte(' ')
		b.WriteString(formatSpan(it.node.Span(), fs))
		b.WriteByte('\n')

		// дети кладутся в обратном порядке, чтобы сниматься в порядке исходника
		children := ast.Children(it.node)
		for i := len(children) - 1; i >= 0; i-- {
			if i == len(children)-1 {
				stack = append(stack, item{children[i], it.rest + "└─ ", it.rest + "   "})
			} else {
				stack = append(stack, item{children[i], it.rest + "├─ ", it.rest + "│  "})
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// nodeLabel is the kind name followed by scalar attributes.
func nodeLabel(n ast.Node) string {
	label := ast.KindName(n)
	for _, a := range ast.Attrs(n) {
		label += " " + a.Key + "=" + a.Value
	}
	return label
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatASTJSON пишет дерево одной строкой JSON. Вывод совпадает с
// json.Marshal(BuildASTOutput(file)), но пишется по явному стеку: у
// encoding/json отступы и разбор ограничены 10000 уровнями вложенности.
func FormatASTJSON(w io.Writer, file *ast.File) error {
	root := BuildASTOutput(file)
	bw := bufio.NewWriter(w)

	type frame struct {
		node *ASTNodeOutput
		next int
	}
	writeJSONNodeHead(bw, &root)
	stack := []frame{{node: &root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.node.Children) {
			if top.next > 0 {
				bw.WriteByte(']')
			}
			bw.WriteByte('}')
			stack = stack[:len(stack)-1]
			continue
		}
		if top.next == 0 {
			bw.WriteString(`,"children":[`)
		} else {
			bw.WriteByte(',')
		}
		child := &top.node.Children[top.next]
		top.next++
		writeJSONNodeHead(bw, child)
		stack = append(stack, frame{node: child})
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// writeJSONNodeHead пишет открытый объект узла без детей и закрывающей скобки.
func writeJSONNodeHead(bw *bufio.Writer, n *ASTNodeOutput) {
	bw.WriteString(`{"type":`)
	bw.WriteString(jsonString(n.Type))
	bw.WriteString(`,"start_byte":`)
	bw.WriteString(strconv.FormatUint(uint64(n.StartByte), 10))
	bw.WriteString(`,"end_byte":`)
	bw.WriteString(strconv.FormatUint(uint64(n.EndByte), 10))
	if len(n.Attrs) == 0 {
		return
	}
	bw.WriteString(`,"attrs":{`)
	for i, key := range slices.Sorted(maps.Keys(n.Attrs)) {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(jsonString(key))
		bw.WriteByte(':')
		bw.WriteString(jsonString(n.Attrs[key]))
	}
	bw.WriteByte('}')
}

func jsonString(s string) string {
	b, _ := json.Marshal(s) // строка всегда сериализуется
	return string(b)
}

func FormatASTMsgpack(w io.Writer, file *ast.File) error {
	return newMsgpackEncoder(w).Encode(BuildASTOutput(file))
}

// FormatASTDump печатает сырые Go-структуры дерева через pp (для отладки парсера).
// pp хранит цвет в глобальной pp.ColoringEnabled: вызов держит ppMu и
// возвращает прежнее значение.
func FormatASTDump(w io.Writer, file *ast.File, colored bool) error {
	ppMu.Lock()
	defer ppMu.Unlock()
	prev := pp.ColoringEnabled
	pp.ColoringEnabled = colored
	defer func() { pp.ColoringEnabled = prev }()
	_, err := pp.Fprintln(w, file)
	return err
}

var ppMu sync.Mutex
