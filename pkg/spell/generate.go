/*
Package spell is the correction core: single-edit candidate generation,
combined bigram/frequency ranking, and the check orchestration tying both
to the lexicon store.
*/
package spell

// Generate enumerates every string exactly one edit operation away from
// word: deletions, adjacent transpositions, substitutions and insertions,
// drawn from the given alphabet. Distance-2 expansion is deliberately out:
// the precision/latency tradeoff favors a small, relevant candidate set.
//
// The output order is fixed: operation families run in the order above,
// positions ascend within a family, and the alphabet is iterated front to
// back. Duplicates keep their first position and the input word itself is
// never returned. Keeping the order deterministic makes downstream tie
// breaking reproducible.
func Generate(word string, alphabet []rune) []string {
	runes := []rune(word)
	n := len(runes)

	estimate := 2*n + 1 + (2*n+1)*len(alphabet)
	out := make([]string, 0, estimate)
	seen := make(map[string]struct{}, estimate)
	add := func(candidate string) {
		if candidate == word {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}

	// Deletions: drop the rune at each position.
	for i := 0; i < n; i++ {
		add(string(runes[:i]) + string(runes[i+1:]))
	}

	// Transpositions: swap each adjacent pair.
	for i := 0; i+1 < n; i++ {
		swapped := make([]rune, n)
		copy(swapped, runes)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		add(string(swapped))
	}

	// Substitutions: replace each rune with each alphabet letter.
	for i := 0; i < n; i++ {
		for _, letter := range alphabet {
			add(string(runes[:i]) + string(letter) + string(runes[i+1:]))
		}
	}

	// Insertions: each alphabet letter at each boundary, including both ends.
	for i := 0; i <= n; i++ {
		for _, letter := range alphabet {
			add(string(runes[:i]) + string(letter) + string(runes[i:]))
		}
	}

	return out
}
