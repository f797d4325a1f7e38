package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"charj/internal/ast"
)

func TestStatementKinds(t *testing.T) {
	src := `fn main() {
	var x: int = 1;
	val y = x + 1;
	if (x < y) { x = y; } else x = 0;
	while (x > 0) x -= 1;
	for (item in items) print(item);
	return x;
	return;
	break;
	continue;
	;
	{ }
	f(x);
}`
	file := mustParse(t, src)
	want := []string{
		"VarStmt", "VarStmt", "IfStmt", "WhileStmt", "ForStmt", "ReturnStmt",
		"ReturnStmt", "BreakStmt", "ContinueStmt", "EmptyStmt", "BlockStmt", "ExprStmt",
	}
	if diff := cmp.Diff(want, kinds(funcBody(t, file))); diff != "" {
		t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestVarStatement(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantType string
		wantVal  string
		wantMut  bool
	}{
		{"var with type and value", "var x: int = 42;", "x", "int", "42", true},
		{"val with value only", "val x = 42;", "x", "<nil>", "42", false},
		{"var with type only", "var xs: List<int>[];", "xs", "List<int>[]", "<nil>", true},
		{"bare var", "var x;", "x", "<nil>", "<nil>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, "fn main() { "+tt.input+" }")
			stmts := funcBody(t, file)
			if len(stmts) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(stmts))
			}
			vs, ok := stmts[0].(*ast.VarStmt)
			if !ok {
				t.Fatalf("expected *ast.VarStmt, got %T", stmts[0])
			}
			d := vs.Decl
			if d.Name.Name != tt.wantName {
				t.Errorf("name = %q, want %q", d.Name.Name, tt.wantName)
			}
			if got := sexpr(d.Type); got != tt.wantType {
				t.Errorf("type = %s, want %s", got, tt.wantType)
			}
			if got := sexpr(d.Value); got != tt.wantVal {
				t.Errorf("value = %s, want %s", got, tt.wantVal)
			}
			if d.Mutable != tt.wantMut {
				t.Errorf("mutable = %v, want %v", d.Mutable, tt.wantMut)
			}
			if vs.Span() != d.Loc {
				t.Errorf("VarStmt span %v differs from decl span %v", vs.Span(), d.Loc)
			}
		})
	}
}

func TestDanglingElse(t *testing.T) {
	file := mustParse(t, "fn main() { if (a) if (b) x; else y; }")
	stmts := funcBody(t, file)
	outer, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", stmts[0])
	}
	if outer.Else != nil {
		t.Fatalf("else attached to the outer if")
	}
	inner, ok := outer.Then.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected nested *ast.IfStmt, got %T", outer.Then)
	}
	if inner.Else == nil {
		t.Fatalf("else missing on the inner if")
	}
	if got := sexpr(inner.Else.(*ast.ExprStmt).X); got != "y" {
		t.Errorf("else branch = %s, want y", got)
	}
}

func TestElseIfChain(t *testing.T) {
	file := mustParse(t, "fn main() { if (a) x; else if (b) y; else z; }")
	first := funcBody(t, file)[0].(*ast.IfStmt)
	second, ok := first.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected else-if, got %T", first.Else)
	}
	if second.Else == nil {
		t.Errorf("final else missing")
	}
}

func TestForStatement(t *testing.T) {
	file := mustParse(t, "fn main() { for (x in xs.items()) { total += x; } }")
	loop, ok := funcBody(t, file)[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", funcBody(t, file)[0])
	}
	if loop.Var.Name != "x" {
		t.Errorf("loop var = %q, want x", loop.Var.Name)
	}
	if got := sexpr(loop.Iter); got != "(call (. xs items))" {
		t.Errorf("iter = %s", got)
	}
	body, ok := loop.Body.(*ast.BlockStmt)
	if !ok || len(body.Stmts) != 1 {
		t.Fatalf("unexpected body %#v", loop.Body)
	}
}

func TestReturnForms(t *testing.T) {
	file := mustParse(t, "fn f(): int { return; return 1 + 2; }")
	stmts := funcBody(t, file)
	if got := stmts[0].(*ast.ReturnStmt).Value; got != nil {
		t.Errorf("bare return has value %s", sexpr(got))
	}
	if got := sexpr(stmts[1].(*ast.ReturnStmt).Value); got != "(+ 1 2)" {
		t.Errorf("return value = %s", got)
	}
}

func TestStatementErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"missing semicolon before var", "fn main() { var x = 1 var y = 2; }",
			"[SYN2001] expected ';' after variable declaration, found 'var'",
		},
		{
			"missing semicolon after expression", "fn main() { f() }",
			"[SYN2001] expected ';' after expression, found '}'",
		},
		{
			"missing semicolon after break", "fn main() { break }",
			"[SYN2001] expected ';' after 'break', found '}'",
		},
		{
			"missing semicolon after return", "fn main() { return 1 }",
			"[SYN2001] expected ';' after return statement, found '}'",
		},
		{
			"if without parens", "fn main() { if x { } }",
			"[SYN2001] expected '(' after 'if', found 'x'",
		},
		{
			"unclosed condition", "fn main() { while (x { } }",
			"[SYN2001] expected ')' after condition, found '{'",
		},
		{
			"for without in", "fn main() { for (x xs) { } }",
			"[SYN2001] expected 'in' after loop variable, found 'xs'",
		},
		{
			"var without name", "fn main() { val = 1; }",
			"[SYN2001] expected identifier after 'val', found '='",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag := parseSource(t, tt.input)
			if got := diagnosticsSummary(bag); got != tt.want {
				t.Errorf("diagnostics = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMissingSemicolonKeepsStatement(t *testing.T) {
	file, _, bag := parseSource(t, "fn main() { var x = 1 var y = 2; }")
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %s", diagnosticsSummary(bag))
	}
	stmts := funcBody(t, file)
	if diff := cmp.Diff([]string{"VarStmt", "VarStmt"}, kinds(stmts)); diff != "" {
		t.Fatalf("statement kinds mismatch (-want +got):\n%s", diff)
	}
	if got := stmts[0].(*ast.VarStmt).Decl.Name.Name; got != "x" {
		t.Errorf("first decl = %q, want x", got)
	}
}
