// Package fuzztests houses Go fuzz harnesses for the Charj front end
// (source -> lexer -> parser). Они проверяют, что на произвольном входе
// лексер и парсер не паникуют, не зависают и сохраняют инварианты спанов.
//
// Сиды берутся из testdata/ в корне репозитория и из встроенного списка.
//
//	go test ./internal/fuzz -fuzz=FuzzParserSpans
package fuzztests
