package anonymizer

import (
	"slices"

	"go.trai.ch/masq/internal/core/domain"
)

// Restore replaces every placeholder token of text with the identifier it
// stands for. Tokens without an entry, keywords included, are kept verbatim.
// The text is never parsed, so hand-edited files restore as long as their
// placeholders survive.
func Restore(text string, table *domain.SymbolTable) string {
	return domain.IdentifierPattern.ReplaceAllStringFunc(text, func(tok string) string {
		if name, ok := table.Real(tok); ok {
			return name
		}
		return tok
	})
}

// keywords are the identifiers the emitter writes itself.
var keywords = []string{
	"define",
	"domain",
	"problem",
	"and",
	"not",
	domain.BaseType,
}

// Leaks returns the identifier tokens of an anonymized text that are neither
// placeholders of table nor keywords, in order of first appearance.
// Tokens directly after a colon (section and requirement keywords) are ignored.
func Leaks(text string, table *domain.SymbolTable) []string {
	var leaks []string
	for _, loc := range domain.IdentifierPattern.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == ':' {
			continue
		}
		tok := text[loc[0]:loc[1]]
		if _, ok := table.Real(tok); ok || slices.Contains(keywords, tok) {
			continue
		}
		if !slices.Contains(leaks, tok) {
			leaks = append(leaks, tok)
		}
	}
	return leaks
}
