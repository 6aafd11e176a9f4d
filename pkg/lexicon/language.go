package lexicon

import "strings"

// DefaultLanguage is used when a caller supplies an unrecognized tag.
const DefaultLanguage = "en-US"

// alphabets maps a canonical language key to the fixed letter set used for
// candidate generation. The order is significant: generation iterates the
// alphabet front to back, so it must never change between releases.
var alphabets = map[string]string{
	"en-US": "abcdefghijklmnopqrstuvwxyz",
	"pt-PT": "abcdefghijklmnopqrstuvwxyzàáâãçéêíóôõú",
}

// primary subtag -> canonical key, for tags like "en" or "en-GB".
var baseTags = map[string]string{
	"en": "en-US",
	"pt": "pt-PT",
}

// Resolve maps a BCP 47 style tag onto a supported language key.
// Matching is case-insensitive and falls back first to the primary subtag
// ("en-GB" resolves to "en-US") and then to DefaultLanguage.
func Resolve(tag string) string {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if lower == "" {
		return DefaultLanguage
	}
	for key := range alphabets {
		if strings.ToLower(key) == lower {
			return key
		}
	}
	base, _, _ := strings.Cut(lower, "-")
	if key, ok := baseTags[base]; ok {
		return key
	}
	return DefaultLanguage
}

// AlphabetFor returns the generation alphabet for a canonical language key.
// Unknown keys get the default language's alphabet.
func AlphabetFor(key string) []rune {
	if letters, ok := alphabets[key]; ok {
		return []rune(letters)
	}
	return []rune(alphabets[DefaultLanguage])
}

// Languages lists the supported canonical language keys.
func Languages() []string {
	keys := make([]string, 0, len(alphabets))
	for key := range alphabets {
		keys = append(keys, key)
	}
	return keys
}
