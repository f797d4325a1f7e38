package lexer_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"charj/internal/diag"
	"charj/internal/lexer"
	"charj/internal/source"
	"charj/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// ErrorMessages возвращает список сообщений об ошибках
func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	file := makeFile(input)
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func makeFile(input string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.charj", []byte(input)))
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens проверяет последовательность токенов без ошибок
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	// убираем EOF из сравнения
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics for %q: %v", input, reporter.ErrorMessages())
	}
}

// expectSingleToken проверяет, что вход создаёт ровно один токен
func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()

	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Errorf("Expected EOF after single token, got %v", next.Kind)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ====== Идентификаторы и ключевые слова ======

func TestIdentifiers_ASCII(t *testing.T) {
	tests := []string{"foo", "_bar", "__test", "_", "x123", "camelCase", "UPPER"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Ident, input)
		})
	}
}

func TestKeywords_Lowercase(t *testing.T) {
	for _, word := range token.Keywords() {
		t.Run(word, func(t *testing.T) {
			want, _ := token.LookupKeyword(word)
			expectSingleToken(t, word, want, word)
		})
	}
}

func TestKeywords_CapitalizedAreIdents(t *testing.T) {
	// Капитализированные версии ключевых слов - это обычные идентификаторы
	for _, word := range token.Keywords() {
		for _, input := range []string{strings.ToUpper(word), strings.ToUpper(word[:1]) + word[1:]} {
			t.Run(input, func(t *testing.T) {
				expectSingleToken(t, input, token.Ident, input)
			})
		}
	}
}

func TestKeywordPrefixIsIdent(t *testing.T) {
	expectTokens(t, "classes fnord iffy newer", []token.Kind{
		token.Ident, token.Ident, token.Ident, token.Ident,
	})
}

func TestIdentifiers_Unicode(t *testing.T) {
	tests := []string{"идентификатор", "δ", "λx", "函数", "変数", "café_2"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Ident, input)
		})
	}
}

// ====== Операторы и пунктуация ======

func TestOperators_MaximalMunch(t *testing.T) {
	tests := []struct {
		input string
		kinds []token.Kind
	}{
		{">=", []token.Kind{token.GtEq}},
		{"> =", []token.Kind{token.Gt, token.Assign}},
		{"+=", []token.Kind{token.PlusAssign}},
		{"++", []token.Kind{token.Plus, token.Plus}},
		{"===", []token.Kind{token.EqEq, token.Assign}},
		{"!==", []token.Kind{token.BangEq, token.Assign}},
		{"&&||", []token.Kind{token.AndAnd, token.OrOr}},
		{"<=<", []token.Kind{token.LtEq, token.Lt}},
		{"-=*=/=%=", []token.Kind{token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign}},
		{"!x", []token.Kind{token.Bang, token.Ident}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.kinds)
		})
	}
}

func TestPunctuation(t *testing.T) {
	expectTokens(t, "(){}[],;:.", []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Comma, token.Semicolon,
		token.Colon, token.Dot,
	})
}

func TestLoneAmpersandIsUnexpected(t *testing.T) {
	lx, rep := makeTestLexer("a & b")
	toks := collectAllTokens(lx)
	if got := len(toks); got != 3 {
		t.Fatalf("expected a, b, EOF; got %s", tokensToString(toks))
	}
	if !slices.Equal(rep.codes(), []diag.Code{diag.LexUnexpectedChar}) {
		t.Fatalf("diagnostics: %v", rep.ErrorMessages())
	}
}

// ====== Числа ======

func TestNumbers_Valid(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0x1F", token.IntLit},
		{"0XdeadBEEF", token.IntLit},
		{"0b1010", token.IntLit},
		{"0b1_0", token.IntLit},
		{"18446744073709551615", token.IntLit},
		{"1.5", token.FloatLit},
		{"0.25", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
		{"6e+2", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, []token.Kind{tt.kind})
		})
	}
}

func TestNumbers_Malformed(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"1.", token.FloatLit},
		{"1e", token.FloatLit},
		{"1e+", token.FloatLit},
		{"1e999", token.FloatLit},
		{"0x", token.IntLit},
		{"0b", token.IntLit},
		{"0b102", token.IntLit},
		{"0x1g", token.IntLit},
		{"12ab", token.IntLit},
		{"1__0", token.IntLit},
		{"1_", token.IntLit},
		{"18446744073709551616", token.IntLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			toks := collectAllTokens(lx)
			if len(toks) != 2 {
				t.Fatalf("expected one token + EOF, got %s", tokensToString(toks))
			}
			if toks[0].Kind != tt.kind || toks[0].Text != tt.input {
				t.Fatalf("got %v(%q), want %v(%q)", toks[0].Kind, toks[0].Text, tt.kind, tt.input)
			}
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
				t.Fatalf("expected exactly one LEX1004, got %v", rep.ErrorMessages())
			}
			if sp := rep.diagnostics[0].Primary; sp != toks[0].Span {
				t.Fatalf("diagnostic span %v must cover the literal %v", sp, toks[0].Span)
			}
		})
	}
}

func TestNumbers_DotMemberAccess(t *testing.T) {
	expectTokens(t, "1.foo", []token.Kind{token.IntLit, token.Dot, token.Ident})
	expectTokens(t, "1.5.x", []token.Kind{token.FloatLit, token.Dot, token.Ident})
}

func TestNumbers_TrailingDotBeforeOperator(t *testing.T) {
	lx, rep := makeTestLexer("1.+2")
	toks := collectAllTokens(lx)
	want := []token.Kind{token.FloatLit, token.Plus, token.IntLit, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("tokens = %s", tokensToString(toks))
		}
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("diagnostics: %v", rep.ErrorMessages())
	}
}

// ====== Строки ======

func TestStrings_Valid(t *testing.T) {
	tests := []string{
		`""`,
		`"hello"`,
		`"tab\tnew\nline"`,
		`"quote \" and \\ and \'"`,
		`"nul \0 cr \r"`,
		`"snow \u{2603} and \u{1F600}"`,
		"\"spans\nlines\"",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectTokens(t, input, []token.Kind{token.StringLit})
		})
	}
}

func TestStrings_InvalidEscape(t *testing.T) {
	input := `"a\qb"`
	lx, rep := makeTestLexer(input)
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.StringLit || toks[0].Text != input {
		t.Fatalf("expected string token to survive, got %s", tokensToString(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexInvalidEscape {
		t.Fatalf("diagnostics: %v", rep.ErrorMessages())
	}
	if sp := rep.diagnostics[0].Primary; sp.Start != 2 || sp.End != 4 {
		t.Fatalf("escape span = %v, want 2..4", sp)
	}
}

func TestStrings_BadUnicodeEscape(t *testing.T) {
	for _, input := range []string{`"\u{}"`, `"\u{D800}"`, `"\u{1234567}"`, `"\u12"`, `"\u{12"`} {
		t.Run(input, func(t *testing.T) {
			_, rep := lexAll(input)
			if !slices.Contains(rep.codes(), diag.LexInvalidEscape) {
				t.Fatalf("expected LEX1005 for %s, got %v", input, rep.ErrorMessages())
			}
		})
	}
}

func TestStrings_Unterminated(t *testing.T) {
	tests := []string{
		`var s = "abc`,
		"var s = \"line one\nline two",
		`var s = "bad \q escape`,
		`var s = "ends with backslash\`,
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			toks, rep := lexAll(input)
			if len(rep.diagnostics) != 1 {
				t.Fatalf("expected exactly one diagnostic, got %v", rep.ErrorMessages())
			}
			d := rep.diagnostics[0]
			if d.Code != diag.LexUnterminatedString {
				t.Fatalf("code = %s", d.Code.ID())
			}
			quote := uint32(strings.IndexByte(input, '"'))
			if d.Primary.Start != quote || d.Primary.End != uint32(len(input)) {
				t.Fatalf("span = %v, want %d..%d", d.Primary, quote, len(input))
			}
			last := toks[len(toks)-2]
			if last.Kind != token.Invalid || last.Span != d.Primary {
				t.Fatalf("expected Invalid token over the literal, got %s", tokensToString(toks))
			}
		})
	}
}

func TestDecodeString(t *testing.T) {
	tests := map[string]string{
		`"plain"`:            "plain",
		`"a\nb"`:             "a\nb",
		`"q\"q"`:             `q"q`,
		`"\\"`:               `\`,
		`"\u{41}\u{3B1}"`:    "Aα",
		`"keep \q verbatim"`: `keep \q verbatim`,
		`"\0"`:               "\x00",
	}
	for in, want := range tests {
		if got := lexer.DecodeString(in); got != want {
			t.Errorf("DecodeString(%s) = %q, want %q", in, got, want)
		}
	}
}

// ====== Комментарии и пробелы ======

func TestComments(t *testing.T) {
	expectTokens(t, "a // comment\nb", []token.Kind{token.Ident, token.Ident})
	expectTokens(t, "a /* block */ b", []token.Kind{token.Ident, token.Ident})
	expectTokens(t, "a /* outer /* inner */ still */ b", []token.Kind{token.Ident, token.Ident})
	expectTokens(t, "a // trailing", []token.Kind{token.Ident})
	expectTokens(t, "a / b", []token.Kind{token.Ident, token.Slash, token.Ident})
	expectTokens(t, "\t\r\n\f x \r\n", []token.Kind{token.Ident})
}

func TestComments_UnterminatedBlock(t *testing.T) {
	input := "var x; /* open /* nested */ never closed"
	toks, rep := lexAll(input)
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("diagnostics: %v", rep.ErrorMessages())
	}
	sp := rep.diagnostics[0].Primary
	if sp.Start != 7 || sp.End != uint32(len(input)) {
		t.Fatalf("span = %v", sp)
	}
	want := []token.Kind{token.KwVar, token.Ident, token.Semicolon, token.Invalid, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("tokens = %s", tokensToString(toks))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("tokens = %s", tokensToString(toks))
		}
	}
}

// ====== Неожиданные символы ======

func TestUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end uint32
	}{
		{"ascii", "a # b", 2, 3},
		{"multibyte", "a € b", 2, 5},
		{"invalid utf8", "a \xff b", 2, 3},
		{"at start", "@a b", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, rep := lexAll(tt.input)
			if len(toks) != 3 || toks[0].Kind != token.Ident || toks[1].Kind != token.Ident {
				t.Fatalf("expected character to be skipped, got %s", tokensToString(toks))
			}
			if len(rep.diagnostics) != 1 {
				t.Fatalf("diagnostics: %v", rep.ErrorMessages())
			}
			d := rep.diagnostics[0]
			if d.Code != diag.LexUnexpectedChar || d.Primary.Start != tt.start || d.Primary.End != tt.end {
				t.Fatalf("got %s at %v", d.Code.ID(), d.Primary)
			}
		})
	}
}

func TestUnexpectedCharacters_EachReported(t *testing.T) {
	_, rep := lexAll("## $")
	if len(rep.diagnostics) != 3 {
		t.Fatalf("expected one diagnostic per character, got %v", rep.ErrorMessages())
	}
}

// ====== Поток токенов ======

func lexAll(input string) ([]token.Token, *testReporter) {
	lx, rep := makeTestLexer(input)
	return collectAllTokens(lx), rep
}

// Токены идут по порядку, не перекрываются, Text совпадает с исходником,
// EOF ровно один и стоит в конце буфера.
func TestTokenStreamCoverage(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"class Point extends Base { var x: int = 1; }",
		"fn main() { return a.b(1, 2.5, \"s\")[0] >= 3 && !c; }",
		"x /* c */ += 0x1F; // done",
		"a # b € \xff \"unterminated",
		"1.foo 1. 12ab 0x /* open",
	}
	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			file := makeFile(input)
			toks := lexer.Tokenize(file, lexer.Options{})
			checkStream(t, file, toks)
		})
	}
}

func checkStream(t *testing.T, file *source.File, toks []token.Token) {
	t.Helper()
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("stream must end with EOF: %s", tokensToString(toks))
	}
	var prevEnd uint32
	for i, tok := range toks {
		if tok.Kind == token.EOF && i != len(toks)-1 {
			t.Fatalf("EOF at position %d of %d", i, len(toks))
		}
		if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
			t.Fatalf("token %d %v overlaps or is reversed (prev end %d)", i, tok.Span, prevEnd)
		}
		if got := file.Text(tok.Span); got != tok.Text {
			t.Fatalf("token %d text %q != source %q", i, tok.Text, got)
		}
		prevEnd = tok.Span.End
	}
	eof := toks[len(toks)-1]
	if eof.Span.Start != file.Len() || !eof.Span.Empty() {
		t.Fatalf("EOF span = %v, want empty at %d", eof.Span, file.Len())
	}
}

func TestEmptyInput(t *testing.T) {
	toks, rep := lexAll("")
	if len(toks) != 1 || toks[0].Kind != token.EOF || len(rep.diagnostics) != 0 {
		t.Fatalf("empty input: %s %v", tokensToString(toks), rep.ErrorMessages())
	}
}

func TestNextAfterEOF(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("Next = %q", n.Text)
	}
}

func TestAllIsRestartable(t *testing.T) {
	file := makeFile("var x = 1 + 2;")
	want := lexer.Tokenize(file, lexer.Options{})

	seq := lexer.All(file, lexer.Options{})
	for pass := range 2 {
		got := slices.Collect(seq)
		if !slices.Equal(got, want) {
			t.Fatalf("pass %d: %s != %s", pass, tokensToString(got), tokensToString(want))
		}
	}

	// ранний выход из range не ломает последующие проходы
	for tok := range seq {
		if tok.Kind == token.Assign {
			break
		}
	}
	if got := slices.Collect(seq); len(got) != len(want) {
		t.Fatalf("after early break: %d tokens, want %d", len(got), len(want))
	}
}

func TestTokenTooLong(t *testing.T) {
	content := strings.Repeat("a", 33) + " b"
	file := makeFile(content)
	rep := &testReporter{}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep, MaxTokenLength: 32})

	if len(toks) != 2 || toks[0].Kind != token.Invalid {
		t.Fatalf("expected Invalid + EOF, got %s", tokensToString(toks))
	}
	if toks[0].Span.End != uint32(len(content)) {
		t.Fatalf("lexer must fast-forward to EOF, span %v", toks[0].Span)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexTokenTooLong {
		t.Fatalf("diagnostics: %v", rep.ErrorMessages())
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	file := makeFile(strings.Repeat("b", 32))
	rep := &testReporter{}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep, MaxTokenLength: 32})
	if toks[0].Kind != token.Ident || len(rep.diagnostics) != 0 {
		t.Fatalf("expected ident without diagnostics, got %s %v", tokensToString(toks), rep.ErrorMessages())
	}
}

func TestUnterminatedStringOverLimit(t *testing.T) {
	content := `val s = "` + strings.Repeat("x", 100)
	file := makeFile(content)
	rep := &testReporter{}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep, MaxTokenLength: 50})

	last := toks[len(toks)-2]
	if last.Kind != token.Invalid || last.Span.Start != 8 || last.Span.End != uint32(len(content)) {
		t.Fatalf("unexpected tokens: %s", tokensToString(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Fatalf("want a single LEX1002, got %v", rep.ErrorMessages())
	}
}
