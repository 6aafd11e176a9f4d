/*
Package lexicon loads and caches the per-language word data behind the spell
checker: the dictionary itself, word frequency counts and bigram
log-likelihood scores.

A Lexicon is immutable once constructed and one instance per language is
shared by every caller. The Store memoizes loads per language key and
coalesces concurrent loads for the same key into a single read.
*/
package lexicon

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Defaults applied when a word or bigram has no recorded data.
const (
	DefaultFrequency     = 1.0
	DefaultBigramPenalty = -1.5
)

// Lexicon holds the immutable word data for one language.
// All fields are read-only after construction.
type Lexicon struct {
	language string
	alphabet []rune
	trie     *patricia.Trie // word -> uint32 frequency
	bigrams  map[string]float64
	words    int
	maxFreq  uint32
}

// Completion is a single prefix-completion result.
type Completion struct {
	Word      string
	Frequency uint32
}

// New builds an in-memory lexicon from word frequencies and a bigram score
// table. The language tag selects the generation alphabet. Zero frequencies
// are bumped to 1 so log-scoring stays finite.
func New(language string, words map[string]uint32, bigrams map[string]float64) *Lexicon {
	return newLexicon(Resolve(language), words, bigrams)
}

func newLexicon(language string, words map[string]uint32, bigrams map[string]float64) *Lexicon {
	lex := &Lexicon{
		language: language,
		alphabet: AlphabetFor(language),
		trie:     patricia.NewTrie(),
		bigrams:  bigrams,
	}
	if lex.bigrams == nil {
		lex.bigrams = map[string]float64{}
	}
	for word, freq := range words {
		if freq == 0 {
			freq = 1
		}
		lex.trie.Insert(patricia.Prefix(word), freq)
		lex.words++
		if freq > lex.maxFreq {
			lex.maxFreq = freq
		}
	}
	return lex
}

// Language returns the canonical language key this lexicon was loaded for.
func (l *Lexicon) Language() string {
	return l.language
}

// Alphabet returns the candidate-generation alphabet for this language.
func (l *Lexicon) Alphabet() []rune {
	return l.alphabet
}

// Contains reports whether word is in the dictionary.
// The word must already be normalized to lowercase.
func (l *Lexicon) Contains(word string) bool {
	if word == "" {
		return false
	}
	return l.trie.Get(patricia.Prefix(word)) != nil
}

// Frequency returns the recorded occurrence count for word, or
// DefaultFrequency when the word has none.
func (l *Lexicon) Frequency(word string) float64 {
	item := l.trie.Get(patricia.Prefix(word))
	if item == nil {
		return DefaultFrequency
	}
	switch v := item.(type) {
	case uint32:
		return float64(v)
	case int:
		return float64(v)
	default:
		log.Errorf("Unknown item type: %T for word %s", item, word)
		return DefaultFrequency
	}
}

// Bigram returns the log-likelihood score recorded for a two-rune window,
// or DefaultBigramPenalty when the pair was never seen in the corpus.
func (l *Lexicon) Bigram(pair string) float64 {
	if score, ok := l.bigrams[pair]; ok {
		return score
	}
	return DefaultBigramPenalty
}

// Complete walks the word trie under prefix and returns up to limit
// completions ordered by descending frequency. The prefix itself is
// skipped so callers never get their own input back.
func (l *Lexicon) Complete(prefix string, limit int) []Completion {
	if prefix == "" || limit == 0 {
		return nil
	}

	var results []Completion
	err := l.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == prefix {
			return nil
		}
		freq, ok := item.(uint32)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, word)
			freq = 1
		}
		results = append(results, Completion{Word: word, Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sortCompletions(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// sortCompletions orders by descending frequency, breaking ties
// alphabetically so repeated calls return the same slice.
func sortCompletions(results []Completion) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Frequency != results[j].Frequency {
			return results[i].Frequency > results[j].Frequency
		}
		return results[i].Word < results[j].Word
	})
}

// Stats returns basic counters about the loaded lexicon.
func (l *Lexicon) Stats() map[string]int {
	return map[string]int{
		"totalWords":   l.words,
		"maxFrequency": int(l.maxFreq),
		"bigrams":      len(l.bigrams),
	}
}
