package lexicon

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeTextLexicon(t *testing.T, dir, key, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, key+textExt), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestStoreLoadsTextFormat(t *testing.T) {
	dir := t.TempDir()
	writeTextLexicon(t, dir, "en-US", "hello 100\nhelp 10\n# comment\nworld\n")

	store := NewStore(dir)
	lex, err := store.Load("en-US")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !lex.Contains("hello") || !lex.Contains("world") {
		t.Error("words from the text list missing")
	}
	if got := lex.Frequency("hello"); got != 100 {
		t.Errorf("expected frequency 100, got %v", got)
	}
	// No count column means frequency 1.
	if got := lex.Frequency("world"); got != 1 {
		t.Errorf("expected default frequency, got %v", got)
	}
	// Text format carries no bigram table: everything gets the penalty.
	if got := lex.Bigram("he"); got != DefaultBigramPenalty {
		t.Errorf("expected default bigram penalty, got %v", got)
	}
}

func TestStoreLoadsCompiledFormat(t *testing.T) {
	dir := t.TempDir()
	blob := &File{
		Language: "en-US",
		Words:    map[string]uint32{"hello": 100, "help": 10},
		Bigrams:  map[string]float64{"he": -1.2, "el": -2.4},
	}
	if err := WriteFile(filepath.Join(dir, "en-US"+lexExt), blob); err != nil {
		t.Fatal(err)
	}
	// A text list alongside must lose to the compiled blob.
	writeTextLexicon(t, dir, "en-US", "textonly 1\n")

	store := NewStore(dir)
	lex, err := store.Load("en-US")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if lex.Contains("textonly") {
		t.Error("compiled blob should take precedence over the text list")
	}
	if got := lex.Bigram("he"); got != -1.2 {
		t.Errorf("expected compiled bigram score, got %v", got)
	}
}

func TestStoreMemoizesPerKey(t *testing.T) {
	dir := t.TempDir()
	writeTextLexicon(t, dir, "en-US", "hello 100\n")
	store := NewStore(dir)

	first, err := store.Load("en-US")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Load("en-US")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same lexicon instance for repeated loads")
	}

	// Different tags resolving to the same key share the instance too.
	third, err := store.Load("en-GB")
	if err != nil {
		t.Fatal(err)
	}
	if third != first {
		t.Error("alias tag should hit the same cached lexicon")
	}
}

func TestStoreConcurrentLoadsShareOneInstance(t *testing.T) {
	dir := t.TempDir()
	writeTextLexicon(t, dir, "en-US", "hello 100\nhelp 10\n")
	store := NewStore(dir)

	const callers = 16
	results := make([]*Lexicon, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(idx int) {
			defer wg.Done()
			lex, err := store.Load("en-US")
			if err != nil {
				t.Errorf("concurrent load failed: %v", err)
				return
			}
			results[idx] = lex
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent loads produced distinct lexicon instances")
		}
	}
}

func TestStoreLoadErrors(t *testing.T) {
	t.Run("missing data", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "nope"))
		if _, err := store.Load("en-US"); err == nil {
			t.Error("expected an error for a missing data dir")
		}
	})

	t.Run("corrupt compiled blob", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "en-US"+lexExt), []byte("definitely not msgpack"), 0644); err != nil {
			t.Fatal(err)
		}
		store := NewStore(dir)
		if _, err := store.Load("en-US"); err == nil {
			t.Error("parse failures must propagate, not produce an empty lexicon")
		}
	})

	t.Run("bad count column", func(t *testing.T) {
		dir := t.TempDir()
		writeTextLexicon(t, dir, "en-US", "hello notanumber\n")
		store := NewStore(dir)
		if _, err := store.Load("en-US"); err == nil {
			t.Error("expected an error for an unparseable count")
		}
	})

	t.Run("failed load retries", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)
		if _, err := store.Load("en-US"); err == nil {
			t.Fatal("expected initial load to fail")
		}
		// Data shows up later; the store must not have cached the failure.
		writeTextLexicon(t, dir, "en-US", "hello 100\n")
		lex, err := store.Load("en-US")
		if err != nil {
			t.Fatalf("retry after failure did not recover: %v", err)
		}
		if !lex.Contains("hello") {
			t.Error("retried load returned wrong data")
		}
	})
}

func TestStorePutAndStats(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Put(New("pt-PT", map[string]uint32{"olá": 7}, nil))

	lex, ok := store.Cached("pt-PT")
	if !ok || !lex.Contains("olá") {
		t.Fatal("Put lexicon not retrievable via Cached")
	}

	stats := store.Stats()
	if stats["pt-PT"] != 1 {
		t.Errorf("expected 1 word for pt-PT, got %d", stats["pt-PT"])
	}
}
