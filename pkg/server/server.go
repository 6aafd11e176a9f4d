package server

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/spellserve/spellserve/pkg/config"
	"github.com/spellserve/spellserve/pkg/lexicon"
	"github.com/spellserve/spellserve/pkg/spell"
)

// Server handles the IPC for spell checking
type Server struct {
	checker    *spell.Checker
	cfg        *config.Config
	configPath string
	decoder    *msgpack.Decoder
	encoder    *msgpack.Encoder
}

// NewServer creates a spell check server using stdin/stdout for IPC
func NewServer(checker *spell.Checker, cfg *config.Config, configPath string) *Server {
	return &Server{
		checker:    checker,
		cfg:        cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(os.Stdin)),
		encoder:    msgpack.NewEncoder(os.Stdout),
	}
}

// NewServerWithIO creates a server on explicit streams. Used by tests.
func NewServerWithIO(checker *spell.Checker, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		checker: checker,
		cfg:     cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start begins the request loop. It returns nil on EOF and an error only
// when the input stream itself is broken; bad requests never stop the loop.
func (s *Server) Start() error {
	log.Debug("Starting server loop")

	s.checker.SetEnabled(s.cfg.Server.Enabled)

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the populated fields of the envelope.
func (s *Server) handleRequest(request Request) {
	switch {
	case request.Action != "":
		s.handleControl(request)
	case request.Prefix != "":
		s.handleComplete(request)
	default:
		s.handleCheck(request)
	}
}

// handleCheck runs the core check and sends the verdict. Oversized tokens
// are skipped rather than rejected: the check contract is fail-open, so a
// token the server will not process still reads as correct.
func (s *Server) handleCheck(request Request) {
	token := request.Token
	if s.cfg.Server.MaxTokenLen > 0 && len(token) > s.cfg.Server.MaxTokenLen {
		log.Debugf("Token exceeds max length %d, skipping check", s.cfg.Server.MaxTokenLen)
		s.sendResponse(CheckResponse{ID: request.ID, Correct: true, Suggestions: []string{}})
		return
	}

	start := time.Now()
	verdict := s.checker.Check(token, request.Language, request.CustomWords)
	elapsed := time.Since(start)

	suggestions := verdict.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	if max := s.cfg.Server.MaxSuggestions; max > 0 && len(suggestions) > max {
		suggestions = suggestions[:max]
	}

	s.sendResponse(CheckResponse{
		ID:          request.ID,
		Correct:     verdict.Correct,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleComplete serves prefix completions from the lexicon word index.
func (s *Server) handleComplete(request Request) {
	prefix := request.Prefix
	if len(prefix) > s.cfg.Server.MaxTokenLen && s.cfg.Server.MaxTokenLen > 0 {
		s.sendError(request.ID, "Prefix exceeds maximum length", 400)
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = 10
	}
	if s.cfg.Server.MaxLimit > 0 && limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	completions := s.checker.Complete(prefix, request.Language, limit)
	elapsed := time.Since(start)

	suggestions := make([]CompletionSuggestion, len(completions))
	for i, comp := range completions {
		suggestions[i] = CompletionSuggestion{Word: comp.Word, Rank: uint16(i + 1)}
	}

	s.sendResponse(CompletionResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleControl toggles checking or reports lexicon info.
func (s *Server) handleControl(request Request) {
	switch request.Action {
	case "enable", "disable":
		enabled := request.Action == "enable"
		s.checker.SetEnabled(enabled)
		if s.configPath != "" {
			if err := s.cfg.Update(s.configPath, &enabled, nil); err != nil {
				log.Warnf("Failed to persist enabled=%v: %v", enabled, err)
			}
		}
		s.sendResponse(ControlResponse{ID: request.ID, Status: "ok", Enabled: enabled})
	case "get_info":
		s.sendResponse(ControlResponse{
			ID:        request.ID,
			Status:    "ok",
			Enabled:   s.checker.Enabled(),
			Languages: lexicon.Languages(),
			Stats:     s.checker.Store().Stats(),
		})
	default:
		s.sendError(request.ID, "Unknown action: "+request.Action, 400)
	}
}

// sendResponse encodes one response frame to the client.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
