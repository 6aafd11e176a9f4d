package spell

import (
	"math"
	"sort"

	"github.com/spellserve/spellserve/pkg/lexicon"
)

// MaxSuggestions caps how many ranked corrections a check returns.
const MaxSuggestions = 5

type scoredCandidate struct {
	word  string
	score float64
}

// Rank filters candidates down to words known to the lexicon or the custom
// set, scores each as bigram log score plus ln(frequency), and returns the
// top entries by descending score. The sort is stable, so candidates with
// equal scores keep the generator's order.
//
// Custom words carry no frequency or bigram data of their own: they score
// with the default frequency (ln 1 = 0) and whatever the lexicon's bigram
// table says about their letter pairs.
func Rank(candidates []string, lex *lexicon.Lexicon, custom map[string]struct{}) []string {
	scored := make([]scoredCandidate, 0, MaxSuggestions)
	for _, cand := range candidates {
		_, isCustom := custom[cand]
		if !isCustom && !lex.Contains(cand) {
			continue
		}
		score := BigramScore(cand, lex) + math.Log(lex.Frequency(cand))
		scored = append(scored, scoredCandidate{word: cand, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > MaxSuggestions {
		scored = scored[:MaxSuggestions]
	}
	words := make([]string, len(scored))
	for i, sc := range scored {
		words[i] = sc.word
	}
	return words
}

// BigramScore sums the lexicon's log-likelihood score over every adjacent
// two-rune window of word. Words shorter than two runes have no windows
// and score 0.
func BigramScore(word string, lex *lexicon.Lexicon) float64 {
	runes := []rune(word)
	if len(runes) < 2 {
		return 0
	}
	score := 0.0
	for i := 0; i+1 < len(runes); i++ {
		score += lex.Bigram(string(runes[i : i+2]))
	}
	return score
}
