// Package cli handles cmd line input for DBG and testing the check pipeline interactively
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/spell"
)

// InputHandler reads tokens from stdin and prints verdicts with the ranked
// suggestions. A "lang:token" line switches the language for that check;
// "+word,word2" sets the custom word list used for subsequent checks.
type InputHandler struct {
	checker     *spell.Checker
	language    string
	customWords string
	maxTokenLen int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(checker *spell.Checker, language string, maxTokenLen int) *InputHandler {
	return &InputHandler{
		checker:     checker,
		language:    language,
		maxTokenLen: maxTokenLen,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("spellserve CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Printf("type a token and press Enter to check it (lang: %s, Ctrl+C to exit):", h.language)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput processes a single line: directives first, then a check.
func (h *InputHandler) handleInput(line string) {
	if rest, ok := strings.CutPrefix(line, "+"); ok {
		h.customWords = rest
		log.Printf("custom words: %v", utils.ParseCustomWords(rest))
		return
	}

	language := h.language
	token := line
	if tag, word, found := strings.Cut(line, ":"); found && word != "" {
		language = tag
		token = word
	}

	if h.maxTokenLen > 0 && len(token) > h.maxTokenLen {
		log.Errorf("Token too long: %s", token)
		return
	}

	start := time.Now()
	verdict := h.checker.Check(token, language, h.customWords)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for token '%s'", elapsed, token)

	if verdict.Correct {
		log.Printf("'%s' looks correct", token)
		return
	}

	log.Printf("'%s' is misspelled, %d suggestions:", token, len(verdict.Suggestions))
	for i, word := range verdict.Suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", word)
		log.Printf("%2d. %s", i+1, clWord)
	}
}
