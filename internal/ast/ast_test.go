package ast

import (
	"strings"
	"testing"

	"charj/internal/source"
)

func span(s, e uint32) source.Span { return source.Span{Start: s, End: e} }

func ident(name string, s, e uint32) *Ident { return &Ident{Loc: span(s, e), Name: name} }

// var x = a + 1;
func sampleFile() *File {
	sum := &BinaryExpr{
		Loc: span(8, 13),
		Op:  BinaryAdd,
		X:   ident("a", 8, 9),
		Y:   &BasicLit{Loc: span(12, 13), Kind: LitInt, Raw: "1", Value: uint64(1)},
	}
	return &File{
		Loc: span(0, 14),
		Decls: []Decl{
			&VarDecl{Loc: span(0, 14), Mutable: true, Name: ident("x", 4, 5), Value: sum},
		},
	}
}

func TestInspectOrder(t *testing.T) {
	var kinds []string
	Inspect(sampleFile(), func(n Node) bool {
		if n != nil {
			kinds = append(kinds, KindName(n))
		}
		return true
	})
	want := "File VarDecl Ident BinaryExpr Ident BasicLit"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("visit order = %q, want %q", got, want)
	}
}

func TestInspectSkipChildren(t *testing.T) {
	count := 0
	Inspect(sampleFile(), func(n Node) bool {
		if n == nil {
			return false
		}
		count++
		_, isBinary := n.(*BinaryExpr)
		return !isBinary
	})
	// File, VarDecl, Ident, BinaryExpr
	if count != 4 {
		t.Fatalf("visited %d nodes, want 4", count)
	}
}

func TestChildrenOmitsNilOptional(t *testing.T) {
	ifs := &IfStmt{
		Loc:  span(0, 10),
		Cond: ident("c", 4, 5),
		Then: &EmptyStmt{Loc: span(7, 8)},
	}
	if got := len(Children(ifs)); got != 2 {
		t.Fatalf("Children(if without else) = %d, want 2", got)
	}
	fn := &FuncDecl{Loc: span(0, 12), Name: ident("f", 3, 4), Body: &BlockStmt{Loc: span(10, 12)}}
	if got := len(Children(fn)); got != 2 {
		t.Fatalf("Children(fn) = %d, want 2", got)
	}
}

func TestEqualAndDiff(t *testing.T) {
	a := sampleFile()
	b := sampleFile()
	if !Equal(a, b) {
		t.Fatal("identical trees must be equal")
	}

	moved := sampleFile()
	moved.Loc = span(0, 20)
	if Equal(a, moved) {
		t.Fatal("Equal must compare spans")
	}
	if !EqualIgnoreSpans(a, moved) {
		t.Fatal("EqualIgnoreSpans must ignore spans")
	}

	changed := sampleFile()
	changed.Decls[0].(*VarDecl).Value.(*BinaryExpr).Op = BinaryMul
	if EqualIgnoreSpans(a, changed) {
		t.Fatal("operator change must be detected")
	}
	if d := Diff(a, changed); d == "" {
		t.Fatal("Diff must describe the change")
	}
	if d := Diff(a, moved); d != "" {
		t.Fatalf("Diff ignores spans, got:\n%s", d)
	}
}

func TestEqualEmptyVsNilSlices(t *testing.T) {
	a := &File{Loc: span(0, 0)}
	b := &File{Loc: span(0, 0), Decls: []Decl{}}
	if !Equal(a, b) {
		t.Fatal("nil and empty decl lists must compare equal")
	}
}

func TestAttrs(t *testing.T) {
	f := sampleFile()
	decl := f.Decls[0].(*VarDecl)
	if got := Attrs(decl); len(got) != 1 || got[0].Value != "var" {
		t.Fatalf("VarDecl attrs = %v", got)
	}
	if got := Attrs(decl.Value); got[0] != (Attr{"op", "+"}) {
		t.Fatalf("BinaryExpr attrs = %v", got)
	}
	if got := Attrs(decl.Name); got[0].Value != `"x"` {
		t.Fatalf("Ident attrs = %v", got)
	}
	if Attrs(&EmptyStmt{}) != nil {
		t.Fatal("EmptyStmt has no attrs")
	}
}

func TestOperatorStrings(t *testing.T) {
	cases := []struct{ got, want string }{
		{BinaryLessEq.String(), "<="},
		{BinaryLogicalOr.String(), "||"},
		{UnaryNot.String(), "!"},
		{AssignMod.String(), "%="},
		{LitFloat.String(), "float"},
		{BinaryOp(200).String(), "?"},
		{(&VarDecl{}).Keyword(), "val"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
	if !BinaryNotEq.IsComparison() || BinaryAdd.IsComparison() {
		t.Error("IsComparison mismatch")
	}
}
