package parser

import (
	"fmt"
	"strings"
	"testing"

	"charj/internal/ast"
	"charj/internal/diag"
	"charj/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.File, *source.File, *diag.Bag) {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.File, *source.File, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.charj", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	opts.Reporter = &diag.BagReporter{Bag: bag}

	result := ParseFile(file, opts)
	if result.File == nil {
		t.Fatalf("ParseFile returned nil tree for %q", input)
	}
	return result.File, file, bag
}

// mustParse проваливает тест при любой диагностике.
func mustParse(t *testing.T, input string) *ast.File {
	t.Helper()
	file, _, bag := parseSource(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return file
}

// parseExpr разбирает выражение как оператор внутри функции.
func parseExprSource(t *testing.T, expr string) (ast.Expr, *diag.Bag) {
	t.Helper()
	file, _, bag := parseSource(t, "fn main() { "+expr+"; }")
	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d (%s)", len(file.Decls), diagnosticsSummary(bag))
	}
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T (%s)", file.Decls[0], diagnosticsSummary(bag))
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d (%s)", len(fn.Body.Stmts), diagnosticsSummary(bag))
	}
	stmt, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T (%s)", fn.Body.Stmts[0], diagnosticsSummary(bag))
	}
	return stmt.X, bag
}

// funcBody возвращает операторы первой функции файла.
func funcBody(t *testing.T, file *ast.File) []ast.Stmt {
	t.Helper()
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			return fn.Body.Stmts
		}
	}
	t.Fatalf("no function in file")
	return nil
}

// sexpr - компактная запись дерева выражения без спанов: (+ 1 (* 2 3)).
func sexpr(n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case *ast.Ident:
		return n.Name
	case *ast.BasicLit:
		return n.Raw
	case *ast.ThisExpr:
		return "this"
	case *ast.ParenExpr:
		return "(paren " + sexpr(n.X) + ")"
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s %s)", n.Op, sexpr(n.X))
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", n.Op, sexpr(n.X), sexpr(n.Y))
	case *ast.AssignExpr:
		return fmt.Sprintf("(%s %s %s)", n.Op, sexpr(n.Target), sexpr(n.Value))
	case *ast.CallExpr:
		return "(call " + joinNodes(append([]ast.Expr{n.Fun}, n.Args...)) + ")"
	case *ast.IndexExpr:
		return fmt.Sprintf("(index %s %s)", sexpr(n.X), sexpr(n.Index))
	case *ast.MemberExpr:
		return fmt.Sprintf("(. %s %s)", sexpr(n.X), n.Name.Name)
	case *ast.ArrayLit:
		return "[" + joinNodes(n.Elems) + "]"
	case *ast.NewExpr:
		if len(n.Args) == 0 {
			return "(new " + sexpr(n.Type) + ")"
		}
		return "(new " + sexpr(n.Type) + " " + joinNodes(n.Args) + ")"
	case *ast.BadExpr:
		return "<bad>"
	case *ast.NamedType:
		return n.Name.Name
	case *ast.GenericType:
		return n.Name.Name + "<" + joinTypes(n.Args) + ">"
	case *ast.ArrayType:
		return sexpr(n.Elem) + "[]"
	case *ast.BadType:
		return "<bad type>"
	}
	return fmt.Sprintf("<%T>", n)
}

func joinNodes(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = sexpr(e)
	}
	return strings.Join(parts, " ")
}

func joinTypes(types []ast.TypeExpr) string {
	parts := make([]string, len(types))
	for i, e := range types {
		parts[i] = sexpr(e)
	}
	return strings.Join(parts, ",")
}

// kinds - список имён типов узлов, например для операторов блока.
func kinds[T ast.Node](nodes []T) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = ast.KindName(n)
	}
	return out
}
