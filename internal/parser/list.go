package parser

import (
	"charj/internal/token"
)

// parseCommaList разбирает элементы через ',' до closing (сам closing не съедается).
// Допускается одна висячая запятая; пустой список - только при allowEmpty.
func parseCommaList[T any](p *Parser, closing token.Kind, allowEmpty bool, item func() (T, bool)) ([]T, bool) {
	var items []T
	if p.at(closing) && allowEmpty {
		return items, true
	}
	for {
		it, ok := item()
		if !ok {
			return nil, false
		}
		items = append(items, it)
		if !p.at(token.Comma) {
			return items, true
		}
		p.advance()
		if p.at(closing) {
			return items, true
		}
	}
}
