/*
Package main implements lexc, the offline lexicon compiler.

lexc turns a plain word frequency list (one "word count" pair per line)
into the compiled msgpack blob the engine loads at runtime. Besides the
dictionary and frequencies, it derives the bigram log-likelihood table from
the frequency-weighted corpus, so common letter pairs score close to zero
and rare ones strongly negative.

	lexc -lang pt-PT -in pt_words.txt -out data/pt-PT.lex
*/
package main

import (
	"bufio"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/logger"
	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/lexicon"
)

func main() {
	language := flag.String("lang", lexicon.DefaultLanguage, "Language tag the lexicon is compiled for")
	inPath := flag.String("in", "", "Input word frequency list (word count per line)")
	outPath := flag.String("out", "", "Output .lex path (default: <lang>.lex next to input)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}
	logr := logger.New("lexc")
	if *inPath == "" {
		logr.Fatal("missing -in: need a word frequency list to compile")
	}

	key := lexicon.Resolve(*language)
	out := *outPath
	if out == "" {
		out = filepath.Join(filepath.Dir(*inPath), key+".lex")
	}

	words, err := readWordList(*inPath)
	if err != nil {
		logr.Fatalf("Failed to read %s: %v", *inPath, err)
	}
	logr.Debugf("Read %d words from %s", len(words), *inPath)

	blob := &lexicon.File{
		Language: key,
		Words:    words,
		Bigrams:  deriveBigrams(words),
	}
	if err := lexicon.WriteFile(out, blob); err != nil {
		logr.Fatalf("Failed to write %s: %v", out, err)
	}
	logr.Infof("Compiled %d words, %d bigrams -> %s", len(blob.Words), len(blob.Bigrams), out)
}

// readWordList parses "word count" lines. Words are normalized the same way
// check tokens are, so lookups match at runtime. Duplicate words keep the
// sum of their counts.
func readWordList(path string) (map[string]uint32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	words := make(map[string]uint32)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		word := utils.NormalizeToken(fields[0])
		if word == "" {
			continue
		}
		count := uint64(1)
		if len(fields) > 1 {
			if parsed, err := strconv.ParseUint(fields[1], 10, 32); err == nil {
				count = parsed
			} else {
				log.Warnf("Skipping bad count %q for word %q", fields[1], word)
			}
		}
		total := uint64(words[word]) + count
		if total > math.MaxUint32 {
			total = math.MaxUint32
		}
		words[word] = uint32(total)
	}
	return words, scanner.Err()
}

// deriveBigrams computes ln(count/total) over every adjacent rune pair in
// the corpus, weighting each word's pairs by the word's frequency.
func deriveBigrams(words map[string]uint32) map[string]float64 {
	counts := make(map[string]uint64)
	var total uint64
	for word, freq := range words {
		runes := []rune(word)
		for i := 0; i+1 < len(runes); i++ {
			counts[string(runes[i:i+2])] += uint64(freq)
			total += uint64(freq)
		}
	}
	if total == 0 {
		return nil
	}

	scores := make(map[string]float64, len(counts))
	for pair, count := range counts {
		scores[pair] = math.Log(float64(count) / float64(total))
	}
	return scores
}
