package token

import (
	"slices"
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"class":    KwClass,
		"extends":  KwExtends,
		"fn":       KwFn,
		"var":      KwVar,
		"val":      KwVal,
		"return":   KwReturn,
		"continue": KwContinue,
		"new":      KwNew,
		"this":     KwThis,
		"true":     KwTrue,
		"false":    KwFalse,
		"null":     KwNull,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"Class", "FN", "Var", // регистр важен
		"int", "string", "let", "const",
		"identifier", "thisValue", "nullable",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKeywordsSortedAndComplete(t *testing.T) {
	words := Keywords()
	if len(words) != 18 {
		t.Fatalf("expected 18 keywords, got %d: %v", len(words), words)
	}
	if !slices.IsSorted(words) {
		t.Fatalf("keywords not sorted: %v", words)
	}
	for _, w := range words {
		k, _ := LookupKeyword(w)
		if k.Spelling() != w {
			t.Fatalf("spelling of %v = %q, want %q", k, k.Spelling(), w)
		}
	}
}
