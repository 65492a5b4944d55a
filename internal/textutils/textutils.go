// Package textutils provides small text helpers shared by the voice and
// categorizer packages.
package textutils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultDescription is used when nothing meaningful survives cleanup.
const DefaultDescription = "Voice command"

var fillerWords = map[string]bool{
	"for": true, "on": true, "a": true, "an": true, "the": true,
	"my": true, "this": true, "that": true, "and": true, "with": true,
}

// NormalizeTranscript lower-cases and trims a spoken phrase before matching.
func NormalizeTranscript(transcript string) string {
	return strings.ToLower(strings.TrimSpace(transcript))
}

// CleanDescription strips filler words, numbers and single-character tokens
// from a spoken fragment. An empty result becomes DefaultDescription.
func CleanDescription(text string) string {
	var kept []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if fillerWords[word] || utf8.RuneCountInString(word) <= 1 || isNumber(word) {
			continue
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 {
		return DefaultDescription
	}
	return strings.Join(kept, " ")
}

// Capitalize upper-cases the first letter of the trimmed input and leaves the
// rest untouched.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isNumber(word string) bool {
	seenDigit := false
	for _, r := range word {
		switch {
		case unicode.IsDigit(r):
			seenDigit = true
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return seenDigit
}
