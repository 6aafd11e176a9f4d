package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
	"github.com/vmihailenco/msgpack/v5"
)

// File is the on-disk shape of a compiled lexicon blob.
// Blobs are produced offline by the lexc tool and decoded here; the engine
// itself never writes them at runtime.
type File struct {
	Language string             `msgpack:"lang"`
	Words    map[string]uint32  `msgpack:"words"`
	Bigrams  map[string]float64 `msgpack:"bigrams"`
}

// lexExt is the compiled msgpack format, textExt the plain word list fallback.
const (
	lexExt  = ".lex"
	textExt = ".txt"
)

// loadFromDir reads the lexicon for key from dir, preferring the compiled
// .lex blob and falling back to a plain text word list.
func loadFromDir(dir, key string) (*Lexicon, error) {
	lexPath := filepath.Join(dir, key+lexExt)
	if _, err := os.Stat(lexPath); err == nil {
		return readLexFile(lexPath, key)
	}

	textPath := filepath.Join(dir, key+textExt)
	if _, err := os.Stat(textPath); err == nil {
		return readTextFile(textPath, key)
	}

	return nil, fmt.Errorf("no lexicon data for %s in %s", key, dir)
}

// readLexFile decodes a compiled msgpack blob. The file is mapped read-only
// rather than copied; msgpack decoding materializes the maps onto the heap,
// so the mapping can be dropped as soon as decoding finishes.
func readLexFile(path, key string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon file %s: %w", path, err)
	}
	defer file.Close()

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map lexicon file %s: %w", path, err)
	}
	defer func() {
		if err := mapped.Unmap(); err != nil {
			log.Warnf("Failed to unmap %s: %v", path, err)
		}
	}()

	var blob File
	if err := msgpack.Unmarshal(mapped, &blob); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon file %s: %w", path, err)
	}
	if len(blob.Words) == 0 {
		return nil, fmt.Errorf("lexicon file %s contains no words", path)
	}

	log.Debugf("Loaded %d words, %d bigrams from %s", len(blob.Words), len(blob.Bigrams), path)
	return newLexicon(key, blob.Words, blob.Bigrams), nil
}

// readTextFile parses a plain word list: one word per line with an optional
// count column. Lines without a parseable count get frequency 1, and there
// is no bigram table in this format.
func readTextFile(path, key string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	words := make(map[string]uint32)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		word := strings.ToLower(fields[0])
		freq := uint32(1)
		if len(fields) > 1 {
			parsed, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bad count on line %d of %s: %w", lineNo, path, err)
			}
			freq = uint32(parsed)
		}
		words[word] = freq
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}

	log.Debugf("Loaded %d words from %s (no bigram table)", len(words), path)
	return newLexicon(key, words, nil), nil
}

// WriteFile encodes a compiled lexicon blob to path. Used by the lexc tool.
func WriteFile(path string, blob *File) error {
	if len(blob.Words) == 0 {
		return fmt.Errorf("refusing to write empty lexicon to %s", path)
	}
	data, err := msgpack.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to encode lexicon: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write lexicon file %s: %w", path, err)
	}
	return nil
}
