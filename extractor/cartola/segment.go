package cartola

import (
	"strings"

	"github.com/finantrack/cartola/extractor/common"
)

// Segment returns the movements region of text, starting at the first header
// found in priority order, flattened to a single line.
func Segment(text string, headers []string) (string, error) {
	for _, header := range headers {
		if idx := strings.Index(text, header); idx >= 0 {
			return common.CollapseSpaces(text[idx:]), nil
		}
	}
	return "", common.NewExtractionError("movements", "no movements section header found")
}
