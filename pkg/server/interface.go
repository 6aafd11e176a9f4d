/*
Package server implements msgpack IPC for the spell check service.

The server provides a minimal interface over stdin/stdout using binary
msgpack frames. Messages are processed synchronously and every response
carries the request ID plus timing info in microseconds.

# IPC

A check request carries the raw token, an optional language tag and an
optional comma-separated custom word list:

	{"id": "req_001", "t": "helo", "lang": "en-US", "cw": "zyx,qwt"}

The server answers with the verdict and ranked suggestions:

	{"id": "req_001", "ok": false, "s": ["hello", "help"], "c": 2, "tm": 145}

Prefix completion reuses the loaded lexicon's word index:

	{"id": "req_002", "p": "hel", "l": 10}

Control messages toggle checking at runtime or report lexicon stats:

	{"id": "ctl_001", "action": "disable"}
	{"id": "ctl_002", "action": "get_info"}

While disabled, every check answers ok=true with no suggestions and no
lexicon work happens. Unknown actions and invalid parameters produce error
responses; the session keeps running.
*/
package server

// Request is the single envelope for incoming frames. Dispatch looks at
// the populated fields: an action means a control op, a prefix means
// completion, otherwise the frame is a check request.
type Request struct {
	ID          string `msgpack:"id"`
	Token       string `msgpack:"t,omitempty"`
	Prefix      string `msgpack:"p,omitempty"`
	Limit       int    `msgpack:"l,omitempty"`
	Language    string `msgpack:"lang,omitempty"`
	CustomWords string `msgpack:"cw,omitempty"`
	Action      string `msgpack:"action,omitempty"` // "enable", "disable", "get_info"
}

// CheckResponse - spell check verdict
type CheckResponse struct {
	ID          string   `msgpack:"id"`
	Correct     bool     `msgpack:"ok"`
	Suggestions []string `msgpack:"s"`
	Count       int      `msgpack:"c"`
	TimeTaken   int64    `msgpack:"tm"`
}

// CompletionSuggestion - minimal suggestion entry
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - prefix completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"tm"`
}

// ControlResponse - control operation response
type ControlResponse struct {
	ID        string         `msgpack:"id"`
	Status    string         `msgpack:"status"`
	Enabled   bool           `msgpack:"enabled"`
	Languages []string       `msgpack:"languages,omitempty"`
	Stats     map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
