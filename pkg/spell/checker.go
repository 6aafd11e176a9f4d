package spell

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/lexicon"
)

// Verdict is the outcome of checking one token.
type Verdict struct {
	Correct     bool
	Suggestions []string
}

// correctVerdict is the shared short-circuit result: nothing to suggest.
var correctVerdict = Verdict{Correct: true}

// Checker orchestrates a check: normalize, short-circuit on known words,
// then generate and rank candidates. It holds no per-request state; the
// only shared mutable piece is the lexicon store's cache.
type Checker struct {
	store   *lexicon.Store
	enabled atomic.Bool
}

// NewChecker creates an enabled checker backed by store.
func NewChecker(store *lexicon.Store) *Checker {
	c := &Checker{store: store}
	c.enabled.Store(true)
	return c
}

// SetEnabled toggles checking at runtime. A disabled checker reports every
// token as correct without touching the lexicon.
func (c *Checker) SetEnabled(on bool) {
	c.enabled.Store(on)
}

// Enabled reports whether checking is active.
func (c *Checker) Enabled() bool {
	return c.enabled.Load()
}

// Check spell-checks a single raw token against the lexicon for the given
// language tag plus a caller-supplied comma-separated custom word list.
//
// Every failure path degrades to a correct verdict with no suggestions: a
// missed correction is preferable to surfacing an error to whoever is
// typing. Lexicon load errors are logged and swallowed here.
func (c *Checker) Check(token, language, customWords string) Verdict {
	if !c.enabled.Load() {
		return correctVerdict
	}

	word := utils.NormalizeToken(token)
	if word == "" || !utils.IsCheckable(word) {
		return correctVerdict
	}
	// Key mashes like "aaaa" are noise, not misspellings.
	if utils.IsRepetitive(word) {
		return correctVerdict
	}

	custom := utils.ParseCustomWords(customWords)
	if _, ok := custom[word]; ok {
		return correctVerdict
	}

	lex, err := c.store.Load(language)
	if err != nil {
		log.Warnf("Lexicon load failed for %q, skipping check: %v", language, err)
		return correctVerdict
	}

	if lex.Contains(word) {
		return correctVerdict
	}

	candidates := Generate(word, lex.Alphabet())
	suggestions := Rank(candidates, lex, custom)

	// No known word within one edit: report the token as correct rather
	// than flagging something we cannot fix.
	return Verdict{
		Correct:     len(suggestions) == 0,
		Suggestions: suggestions,
	}
}

// Complete exposes the lexicon's prefix completion for the given language.
// Returns nil when the lexicon cannot be loaded, same fail-open policy as
// Check.
func (c *Checker) Complete(prefix, language string, limit int) []lexicon.Completion {
	lex, err := c.store.Load(language)
	if err != nil {
		log.Warnf("Lexicon load failed for %q, skipping completion: %v", language, err)
		return nil
	}
	return lex.Complete(utils.NormalizeToken(prefix), limit)
}

// Store returns the backing lexicon store.
func (c *Checker) Store() *lexicon.Store {
	return c.store
}
