package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/k0kubun/pp"
	"github.com/mattn/go-runewidth"

	"charj/internal/lexer"
	"charj/internal/parser"
	"charj/internal/source"
)

func loadVirtual(t *testing.T, src string) (*source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.charj", []byte(src))
	return fs, fs.Get(id)
}

func TestFormatTokensPretty(t *testing.T) {
	fs, file := loadVirtual(t, "val x = 1;")
	toks := lexer.Tokenize(file, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty() error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	checks := []struct {
		line   int
		prefix string
		suffix string
	}{
		{0, "  1: KwVal", `"val" at 1:1-1:4`},
		{1, "  2: Ident", `"x" at 1:5-1:6`},
		{3, "  4: IntLit", `"1" at 1:9-1:10`},
		{5, "  6: EOF", " at 1:11-1:11"},
	}
	for _, c := range checks {
		if !strings.HasPrefix(lines[c.line], c.prefix) || !strings.HasSuffix(lines[c.line], c.suffix) {
			t.Errorf("line %d = %q, want %q ... %q", c.line, lines[c.line], c.prefix, c.suffix)
		}
	}
}

func TestFormatTokensJSONAndMsgpack(t *testing.T) {
	fs, file := loadVirtual(t, "fn f() {}\n")
	toks := lexer.Tokenize(file, lexer.Options{})
	want := BuildTokensOutput(toks, fs)

	if len(want) != 7 || want[len(want)-1].Kind != "EOF" {
		t.Fatalf("unexpected token output: %+v", want)
	}
	if want[1] != (TokenOutput{Kind: "Ident", Text: "f", StartByte: 3, EndByte: 4, Line: 1, Col: 4}) {
		t.Errorf("unexpected ident token: %+v", want[1])
	}

	var jsonBuf bytes.Buffer
	if err := FormatTokensJSON(&jsonBuf, toks, fs); err != nil {
		t.Fatalf("FormatTokensJSON() error: %v", err)
	}
	var fromJSON []TokenOutput
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Errorf("JSON tokens mismatch (-want +got):\n%s", diff)
	}

	var mpBuf bytes.Buffer
	if err := FormatTokensMsgpack(&mpBuf, toks, fs); err != nil {
		t.Fatalf("FormatTokensMsgpack() error: %v", err)
	}
	var fromMsgpack []TokenOutput
	if err := DecodeMsgpack(&mpBuf, &fromMsgpack); err != nil {
		t.Fatalf("DecodeMsgpack() error: %v", err)
	}
	if diff := cmp.Diff(want, fromMsgpack); diff != "" {
		t.Errorf("msgpack tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTokensOutputStopsAtEOF(t *testing.T) {
	fs, file := loadVirtual(t, "x")
	toks := lexer.Tokenize(file, lexer.Options{})
	toks = append(toks, toks[0])
	if got := BuildTokensOutput(toks, fs); len(got) != 2 {
		t.Errorf("expected output to end at EOF, got %+v", got)
	}
}

func TestFormatASTPretty(t *testing.T) {
	fs, file := loadVirtual(t, "val x = 1;")
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics")
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.File, fs); err != nil {
		t.Fatalf("FormatASTPretty() error: %v", err)
	}
	want := "File 1:1-1:11\n" +
		"└─ VarDecl keyword=val 1:1-1:11\n" +
		"   ├─ Ident name=\"x\" 1:5-1:6\n" +
		"   └─ BasicLit kind=int raw=1 1:9-1:10\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty tree mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatASTJSONAndMsgpack(t *testing.T) {
	_, file := loadVirtual(t, "fn add(a: Int, b: Int): Int { return a + b; }")
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics")
	}
	want := BuildASTOutput(res.File)

	var jsonBuf bytes.Buffer
	if err := FormatASTJSON(&jsonBuf, res.File); err != nil {
		t.Fatalf("FormatASTJSON() error: %v", err)
	}
	var fromJSON ASTNodeOutput
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Errorf("JSON tree mismatch (-want +got):\n%s", diff)
	}

	var mpBuf bytes.Buffer
	if err := FormatASTMsgpack(&mpBuf, res.File); err != nil {
		t.Fatalf("FormatASTMsgpack() error: %v", err)
	}
	var fromMsgpack ASTNodeOutput
	if err := DecodeMsgpack(&mpBuf, &fromMsgpack); err != nil {
		t.Fatalf("DecodeMsgpack() error: %v", err)
	}
	if diff := cmp.Diff(want, fromMsgpack); diff != "" {
		t.Errorf("msgpack tree mismatch (-want +got):\n%s", diff)
	}

	fn := want.Children[0]
	if fn.Type != "FuncDecl" || fn.Children[0].Attrs["name"] != `"add"` {
		t.Errorf("unexpected function node: %+v", fn)
	}
}

func TestFormatASTTree(t *testing.T) {
	fs, file := loadVirtual(t, "val 名前 = 1;")
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics")
	}

	layout := layoutTree(res.File, fs)
	for i, line := range layout.lines() {
		if w := runewidth.StringWidth(line); w > layout.width {
			t.Errorf("line %d has width %d, want at most %d: %q", i, w, layout.width, line)
		}
	}

	var buf bytes.Buffer
	if err := FormatASTTree(&buf, res.File, fs); err != nil {
		t.Fatalf("FormatASTTree() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"File t.charj", "VarDecl keyword=val", `Ident name="名前"`, "BasicLit kind=int raw=1", "/", "\\"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output lacks %q:\n%s", want, out)
		}
	}
}

func TestFormatASTTreeLayout(t *testing.T) {
	fs, file := loadVirtual(t, "val x = 1;")
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics")
	}

	var buf bytes.Buffer
	if err := FormatASTTree(&buf, res.File, fs); err != nil {
		t.Fatalf("FormatASTTree() error: %v", err)
	}
	want := "           File t.charj\n" +
		"                 |\n" +
		"        VarDecl keyword=val\n" +
		"       /         |          \\\n" +
		"Ident name=\"x\"   BasicLit kind=int raw=1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

// deepExprFile разбирает main с одним присваиванием x = rhs.
func deepExprFile(t *testing.T, rhs string) (*source.FileSet, parser.Result) {
	t.Helper()
	fs, file := loadVirtual(t, "fn main() { x = "+rhs+"; }")
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics for deep expression")
	}
	return fs, res
}

func TestFormatASTTreeDeepChain(t *testing.T) {
	const depth = 20000
	fs, res := deepExprFile(t, strings.Repeat("-", depth)+"1")

	var buf bytes.Buffer
	if err := FormatASTTree(&buf, res.File, fs); err != nil {
		t.Fatalf("FormatASTTree() error: %v", err)
	}
	if got := strings.Count(buf.String(), "UnaryExpr op=-"); got != depth {
		t.Errorf("tree has %d unary nodes, want %d", got, depth)
	}
	// вертикальная цепочка: ширина не растет с глубиной
	for i, line := range strings.Split(buf.String(), "\n") {
		if len(line) > 80 {
			t.Fatalf("line %d is %d bytes wide: %q", i, len(line), line)
		}
	}
}

func TestFormatASTJSONDeepTree(t *testing.T) {
	const depth = 6000
	_, res := deepExprFile(t, "1"+strings.Repeat("+1", depth))

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, res.File); err != nil {
		t.Fatalf("FormatASTJSON() error: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, `"type":"BinaryExpr"`); got != depth {
		t.Errorf("JSON has %d binary nodes, want %d", got, depth)
	}
	if opened, closed := strings.Count(out, "{"), strings.Count(out, "}"); opened != closed {
		t.Errorf("unbalanced JSON objects: %d opened, %d closed", opened, closed)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("JSON output is not terminated: %q", out[max(0, len(out)-20):])
	}
}

func TestFormatASTJSONMatchesEncoder(t *testing.T) {
	_, file := loadVirtual(t, "class Box<T> extends Base { var items: List<T> = \"<a&b>\"; }")
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics")
	}

	want, err := json.Marshal(BuildASTOutput(res.File))
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, res.File); err != nil {
		t.Fatalf("FormatASTJSON() error: %v", err)
	}
	if diff := cmp.Diff(string(want)+"\n", buf.String()); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatASTPrettyDeepChain(t *testing.T) {
	const depth = 3000
	fs, res := deepExprFile(t, strings.Repeat("!", depth)+"x")

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.File, fs); err != nil {
		t.Fatalf("FormatASTPretty() error: %v", err)
	}
	if got := strings.Count(buf.String(), "UnaryExpr op=!"); got != depth {
		t.Errorf("pretty tree has %d unary nodes, want %d", got, depth)
	}
}

func TestFormatASTDumpKeepsGlobalColoring(t *testing.T) {
	_, file := loadVirtual(t, "val x = 1;")
	res := parser.ParseFile(file, parser.Options{})

	prev := pp.ColoringEnabled
	t.Cleanup(func() { pp.ColoringEnabled = prev })
	pp.ColoringEnabled = true

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			if err := FormatASTDump(&buf, res.File, false); err != nil {
				t.Errorf("FormatASTDump() error: %v", err)
				return
			}
			if strings.Contains(buf.String(), "\x1b[") {
				t.Errorf("uncolored dump contains escape codes")
			}
		}()
	}
	wg.Wait()
	if !pp.ColoringEnabled {
		t.Errorf("FormatASTDump left pp.ColoringEnabled changed")
	}
}

func TestFormatASTDump(t *testing.T) {
	_, file := loadVirtual(t, "val x = 1;")
	res := parser.ParseFile(file, parser.Options{})

	var buf bytes.Buffer
	if err := FormatASTDump(&buf, res.File, false); err != nil {
		t.Fatalf("FormatASTDump() error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "VarDecl") || strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected dump output:\n%s", out)
	}
}
