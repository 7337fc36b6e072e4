package extraction

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	minTranscriptLength = 10
	maxTranscriptLength = 50000
)

// Validation errors are surfaced verbatim to callers, so the wording here is
// user-facing.
var (
	ErrTranscriptTooShort = errors.New("Transcript must be at least 10 characters long")
	ErrTranscriptTooLong  = errors.New("Transcript is too long (max 50,000 characters)")
)

// ValidateTranscript checks the submitted text against length bounds. The
// lower bound applies to the trimmed text, the upper bound to the raw text.
func ValidateTranscript(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTranscriptLength {
		return ErrTranscriptTooShort
	}
	if utf8.RuneCountInString(text) > maxTranscriptLength {
		return ErrTranscriptTooLong
	}
	return nil
}
