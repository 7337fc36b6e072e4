// Package textutil holds small text helpers shared by the extraction
// pipeline and presentation layers.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordCount counts whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Snippet returns the first limit runes of text, collapsing internal
// whitespace and appending an ellipsis when truncated.
func Snippet(text string, limit int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if limit <= 0 {
		return ""
	}
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	trimmed := strings.TrimRightFunc(string(runes[:limit]), unicode.IsSpace)
	return trimmed + "..."
}

// TitleCase uppercases the first letter of each word for display labels.
func TitleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	return cases.Title(language.Und).String(value)
}
