package cartola

import "regexp"

// matcher inspects text and reports a result when it recognises it.
type matcher[T any] func(text string) (T, bool)

// firstMatch runs matchers in order and returns the first recognised result.
func firstMatch[T any](text string, matchers []matcher[T]) (T, bool) {
	for _, m := range matchers {
		if result, ok := m(text); ok {
			return result, true
		}
	}
	var zero T
	return zero, false
}

// submatchers adapts an ordered pattern list into matchers returning the
// capture groups of the first pattern that hits.
func submatchers(patterns []*regexp.Regexp) []matcher[[]string] {
	matchers := make([]matcher[[]string], 0, len(patterns))
	for _, re := range patterns {
		re := re
		matchers = append(matchers, func(text string) ([]string, bool) {
			m := re.FindStringSubmatch(text)
			return m, m != nil
		})
	}
	return matchers
}
