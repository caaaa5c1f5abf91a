package categorize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AccountType is a persisted card type.
type AccountType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var fillerTokens = map[string]bool{
	"cartola":  true,
	"cuenta":   true,
	"banco":    true,
	"numero":   true,
	"nro":      true,
	"n":        true,
	"de":       true,
	"la":       true,
	"del":      true,
	"sucursal": true,
}

// InferAccountType picks the first type whose normalized name appears in the
// normalized statement title, or whose name contains the title's remaining
// words. Without a match it returns the type named fallback; ok is false only
// when that one is missing too.
func InferAccountType(title string, types []AccountType, fallback string) (AccountType, bool) {
	core := normalizeTokens(title, true)
	compactTitle := strings.Join(core, "")

	for _, t := range types {
		name := strings.Join(normalizeTokens(t.Name, false), "")
		if name == "" || compactTitle == "" {
			continue
		}
		if strings.Contains(compactTitle, name) || strings.Contains(name, compactTitle) {
			return t, true
		}
	}

	for _, t := range types {
		if strings.EqualFold(t.Name, fallback) {
			return t, true
		}
	}
	return AccountType{}, false
}

// normalizeTokens lowercases, folds accents, splits on anything that is not
// a letter or digit and drops filler words. dropNumbers also removes
// purely numeric tokens such as account numbers.
func normalizeTokens(text string, dropNumbers bool) []string {
	folded := FoldAccents(strings.ToLower(text))

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if fillerTokens[f] {
			continue
		}
		if dropNumbers && strings.IndexFunc(f, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// FoldAccents removes diacritics, keeping case.
func FoldAccents(text string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		return text
	}
	return folded
}
