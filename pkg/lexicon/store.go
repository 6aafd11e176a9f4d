package lexicon

import (
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// Store memoizes lexicons per language key. Concurrent requests for a key
// that is not cached yet coalesce onto one underlying read; failed loads are
// not cached, so a later call retries from disk.
type Store struct {
	dir   string
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*Lexicon
}

// NewStore creates a store reading lexicon data from dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[string]*Lexicon),
	}
}

// Load returns the lexicon for a language tag, reading it from disk on
// first use. Unrecognized tags resolve to the default language.
func (s *Store) Load(tag string) (*Lexicon, error) {
	key := Resolve(tag)

	s.mu.RLock()
	cached := s.cache[key]
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	result, err, shared := s.group.Do(key, func() (any, error) {
		// Re-check under the flight: a previous call may have finished
		// between the cache miss and Do.
		s.mu.RLock()
		cached := s.cache[key]
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		lex, err := loadFromDir(s.dir, key)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache[key] = lex
		s.mu.Unlock()
		return lex, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debugf("Coalesced concurrent load for %s", key)
	}
	return result.(*Lexicon), nil
}

// Cached returns the lexicon for a tag only if it is already in memory.
func (s *Store) Cached(tag string) (*Lexicon, bool) {
	key := Resolve(tag)
	s.mu.RLock()
	defer s.mu.RUnlock()
	lex, ok := s.cache[key]
	return lex, ok
}

// Put installs a prebuilt lexicon under its own language key, replacing any
// cached one. Intended for tests and embedded setups.
func (s *Store) Put(lex *Lexicon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[lex.Language()] = lex
}

// Stats reports per-language word counts for every cached lexicon.
func (s *Store) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make(map[string]int, len(s.cache))
	for key, lex := range s.cache {
		stats[key] = lex.words
	}
	return stats
}
