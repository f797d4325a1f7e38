package diagfmt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"charj/internal/ast"
	"charj/internal/source"
)

const treeSpacing = 3

// treeNode - узел раскладки. Узлы лежат в срезе в прямом порядке обхода,
// поэтому индекс ребенка всегда больше индекса родителя.
type treeNode struct {
	label      string
	labelWidth int
	depth      int
	children   []int

	// относительно левого края блока поддерева
	width     int
	root      int   // колонка вертикального коннектора
	shift     int   // колонка начала метки
	childOffs []int // левый край блока каждого ребенка
	childPos  []int // колонка коннектора каждого ребенка

	x int // абсолютный левый край блока
}

type treeLayout struct {
	nodes    []treeNode
	width    int
	maxDepth int
}

// FormatASTTree рисует дерево сверху вниз ASCII-графикой:
//
//	    File
//	     |
//	  FuncDecl
//	  /     \
//	Ident  BlockStmt
func FormatASTTree(w io.Writer, file *ast.File, fs *source.FileSet) error {
	var b strings.Builder
	layout := layoutTree(file, fs)
	for _, line := range layout.lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// layoutTree раскладывает дерево за линейное число шагов без рекурсии:
// сначала размеры блоков снизу вверх, потом абсолютные колонки сверху вниз.
func layoutTree(file *ast.File, fs *source.FileSet) treeLayout {
	type pending struct {
		node   ast.Node
		parent int
	}
	var t treeLayout
	stack := []pending{{node: file, parent: -1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		label := nodeLabel(it.node)
		if _, isFile := it.node.(*ast.File); isFile && fs != nil && int(it.node.Span().File) < fs.Len() {
			label += " " + fs.Get(it.node.Span().File).FormatPath("auto", "")
		}
		idx := len(t.nodes)
		n := treeNode{label: label, labelWidth: runewidth.StringWidth(label)}
		if it.parent >= 0 {
			n.depth = t.nodes[it.parent].depth + 1
			t.nodes[it.parent].children = append(t.nodes[it.parent].children, idx)
		}
		t.maxDepth = max(t.maxDepth, n.depth)
		t.nodes = append(t.nodes, n)

		children := ast.Children(it.node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pending{node: children[i], parent: idx})
		}
	}

	for i := len(t.nodes) - 1; i >= 0; i-- {
		t.measure(i)
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		for k, c := range n.children {
			t.nodes[c].x = n.x + n.childOffs[k]
		}
	}
	if len(t.nodes) > 0 {
		t.width = t.nodes[0].width
	}
	return t
}

// measure считает блок узла i; блоки детей уже посчитаны.
// Корень стоит над серединой детей; если метка шире, дети сдвигаются вправо.
func (t *treeLayout) measure(i int) {
	n := &t.nodes[i]
	if len(n.children) == 0 {
		n.width, n.root = n.labelWidth, n.labelWidth/2
		return
	}

	n.childOffs = make([]int, len(n.children))
	n.childPos = make([]int, len(n.children))
	total := 0
	for k, c := range n.children {
		if k > 0 {
			total += treeSpacing
		}
		n.childOffs[k] = total
		n.childPos[k] = total + t.nodes[c].root
		total += t.nodes[c].width
	}

	center := (n.childPos[0] + n.childPos[len(n.childPos)-1]) / 2
	shift := center - n.labelWidth/2
	if shift < 0 {
		for k := range n.children {
			n.childOffs[k] -= shift
			n.childPos[k] -= shift
		}
		total -= shift
		shift = 0
	}
	n.shift = shift
	n.root = shift + n.labelWidth/2
	n.width = max(total, shift+n.labelWidth, n.root+1)
}

// lines собирает строки вывода. Узел глубины d дает метку в строке 2d и
// коннекторы в строке 2d+1; в прямом порядке обхода узлы одной строки идут
// слева направо, поэтому каждая строка пишется только дописыванием.
func (t *treeLayout) lines() []string {
	if len(t.nodes) == 0 {
		return nil
	}
	rows := make([]strings.Builder, 2*t.maxDepth+1)
	cols := make([]int, len(rows))
	put := func(row, col int, text string) {
		if col > cols[row] {
			rows[row].WriteString(strings.Repeat(" ", col-cols[row]))
			cols[row] = col
		}
		rows[row].WriteString(text)
		cols[row] += runewidth.StringWidth(text)
	}

	for i := range t.nodes {
		n := &t.nodes[i]
		put(2*n.depth, n.x+n.shift, n.label)
		if len(n.children) == 0 {
			continue
		}
		row := 2*n.depth + 1
		rootDone := false
		for _, pos := range n.childPos {
			if !rootDone && n.root < pos {
				put(row, n.x+n.root, "|")
				rootDone = true
			}
			switch {
			case pos < n.root:
				put(row, n.x+pos, "/")
			case pos > n.root:
				put(row, n.x+pos, "\\")
			default:
				put(row, n.x+pos, "|")
				rootDone = true
			}
		}
		if !rootDone {
			put(row, n.x+n.root, "|")
		}
	}

	out := make([]string, len(rows))
	for i := range rows {
		out[i] = strings.TrimRight(rows[i].String(), " ")
	}
	return out
}
