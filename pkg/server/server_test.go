package server

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/spellserve/spellserve/pkg/config"
	"github.com/spellserve/spellserve/pkg/lexicon"
	"github.com/spellserve/spellserve/pkg/spell"
)

func newTestChecker(t *testing.T) *spell.Checker {
	t.Helper()
	store := lexicon.NewStore(t.TempDir())
	store.Put(lexicon.New("en-US", map[string]uint32{
		"hello": 100,
		"help":  10,
		"hell":  5,
		"world": 50,
	}, nil))
	return spell.NewChecker(store)
}

// runSession encodes the requests, runs the loop to EOF and returns a
// decoder positioned at the first response frame.
func runSession(t *testing.T, cfg *config.Config, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	srv := NewServerWithIO(newTestChecker(t), cfg, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	return msgpack.NewDecoder(&out)
}

func TestServerCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	dec := runSession(t, cfg,
		Request{ID: "r1", Token: "hello"},
		Request{ID: "r2", Token: "helo"},
	)

	var known CheckResponse
	if err := dec.Decode(&known); err != nil {
		t.Fatal(err)
	}
	if known.ID != "r1" || !known.Correct || known.Count != 0 {
		t.Errorf("unexpected verdict for known word: %+v", known)
	}

	var miss CheckResponse
	if err := dec.Decode(&miss); err != nil {
		t.Fatal(err)
	}
	if miss.ID != "r2" || miss.Correct {
		t.Errorf("misspelling not flagged: %+v", miss)
	}
	if miss.Count == 0 || miss.Suggestions[0] != "hello" {
		t.Errorf("expected \"hello\" as top suggestion, got %v", miss.Suggestions)
	}
	if miss.Count != len(miss.Suggestions) {
		t.Errorf("count %d disagrees with %d suggestions", miss.Count, len(miss.Suggestions))
	}
}

func TestServerCheckSuggestionCap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxSuggestions = 1

	dec := runSession(t, cfg, Request{ID: "r1", Token: "helo"})

	var resp CheckResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Suggestions) != 1 {
		t.Errorf("expected suggestions clamped to 1, got %v", resp.Suggestions)
	}
}

func TestServerCheckOversizedToken(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxTokenLen = 4

	dec := runSession(t, cfg, Request{ID: "r1", Token: "hellooooo"})

	var resp CheckResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	// Tokens past the limit are skipped, not rejected.
	if !resp.Correct || resp.Count != 0 {
		t.Errorf("oversized token should pass unchecked, got %+v", resp)
	}
}

func TestServerDisableThenCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	dec := runSession(t, cfg,
		Request{ID: "c1", Action: "disable"},
		Request{ID: "r1", Token: "helo"},
		Request{ID: "c2", Action: "enable"},
		Request{ID: "r2", Token: "helo"},
	)

	var ctl ControlResponse
	if err := dec.Decode(&ctl); err != nil {
		t.Fatal(err)
	}
	if ctl.Status != "ok" || ctl.Enabled {
		t.Errorf("disable not acknowledged: %+v", ctl)
	}

	var silenced CheckResponse
	if err := dec.Decode(&silenced); err != nil {
		t.Fatal(err)
	}
	if !silenced.Correct || silenced.Count != 0 {
		t.Errorf("disabled checks must read correct, got %+v", silenced)
	}

	if err := dec.Decode(&ctl); err != nil {
		t.Fatal(err)
	}
	if !ctl.Enabled {
		t.Errorf("enable not acknowledged: %+v", ctl)
	}

	var flagged CheckResponse
	if err := dec.Decode(&flagged); err != nil {
		t.Fatal(err)
	}
	if flagged.Correct {
		t.Errorf("re-enabled checker should flag again, got %+v", flagged)
	}
}

func TestServerComplete(t *testing.T) {
	cfg := config.DefaultConfig()
	dec := runSession(t, cfg, Request{ID: "p1", Prefix: "hel", Limit: 2})

	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 completions, got %+v", resp)
	}
	if resp.Suggestions[0].Word != "hello" || resp.Suggestions[0].Rank != 1 {
		t.Errorf("unexpected top completion: %+v", resp.Suggestions[0])
	}
	if resp.Suggestions[1].Rank != 2 {
		t.Errorf("ranks must be sequential, got %+v", resp.Suggestions)
	}
}

func TestServerGetInfo(t *testing.T) {
	cfg := config.DefaultConfig()
	dec := runSession(t, cfg, Request{ID: "c1", Action: "get_info"})

	var resp ControlResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || !resp.Enabled {
		t.Errorf("unexpected info response: %+v", resp)
	}
	if len(resp.Languages) == 0 {
		t.Error("expected supported languages in info response")
	}
	if resp.Stats["en-US"] != 4 {
		t.Errorf("expected 4 cached words for en-US, got %v", resp.Stats)
	}
}

func TestServerUnknownAction(t *testing.T) {
	cfg := config.DefaultConfig()
	dec := runSession(t, cfg,
		Request{ID: "c1", Action: "selfdestruct"},
		Request{ID: "r1", Token: "hello"},
	)

	var errResp ErrorResponse
	if err := dec.Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.ID != "c1" || errResp.Code != 400 {
		t.Errorf("expected a 400 error frame, got %+v", errResp)
	}

	// The session survives the bad request.
	var resp CheckResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != "r1" || !resp.Correct {
		t.Errorf("request after error not served: %+v", resp)
	}
}
