package utils

import (
	"unicode"
)

// IsCheckable reports whether a token should go through spell checking at all.
// Tokens containing digits, separators or any other non-letter runes are
// identifiers, codes or mixed content rather than misspellings.
func IsCheckable(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsRepetitive checks if a string consists of repetitive characters
// Simple version that checks for repeated characters (e.g., "aaa", "bbb")
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}

	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}
