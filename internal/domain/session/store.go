package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/config"
	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
)

// Store holds sessions, search contexts and presented items keyed by chat id.
// The lock is never held across I/O; concurrent writes to one key are last-writer-wins.
type Store struct {
	mu        sync.RWMutex
	sessions  map[int64]*Session
	searches  map[int64]SearchContext
	awaiting  map[int64]struct{}
	presented *PresentedCache
	now       func() time.Time
	logger    zerolog.Logger
}

// NewStore creates a new Store instance
func NewStore(cfg *config.SessionConfig, logger zerolog.Logger) *Store {
	return &Store{
		sessions:  make(map[int64]*Session),
		searches:  make(map[int64]SearchContext),
		awaiting:  make(map[int64]struct{}),
		presented: NewPresentedCache(cfg.PresentedItems, logger),
		now:       time.Now,
		logger:    logger.With().Str("component", "session_store").Logger(),
	}
}

// GetOrCreate returns the session for key, creating {none, 1} when absent
func (s *Store) GetOrCreate(key int64) Session {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	if ok {
		out := *sess
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok = s.sessions[key]; !ok {
		sess = &Session{Page: 1, LastActionAt: s.now()}
		s.sessions[key] = sess
	}
	return *sess
}

// Get returns the session for key without creating one
func (s *Store) Get(key int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// SetCategory overwrites the session with {category, 1}
func (s *Store) SetCategory(key int64, category entities.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = &Session{Category: category, Page: 1, LastActionAt: s.now()}
}

// AdvancePage increments the page and returns it.
// Without a session it returns 1 and creates nothing.
func (s *Store) AdvancePage(key int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return 1
	}
	sess.Page++
	sess.LastActionAt = s.now()
	return sess.Page
}

// SetPage sets the page of an existing session; pages below 1 become 1
func (s *Store) SetPage(key int64, page int) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		sess = &Session{}
		s.sessions[key] = sess
	}
	sess.Page = page
	sess.LastActionAt = s.now()
}

// Reset sets the session to {none, 1}
func (s *Store) Reset(key int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = &Session{Page: 1, LastActionAt: s.now()}
}

// BeginSearch marks key as waiting for a search query
func (s *Store) BeginSearch(key int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.awaiting[key] = struct{}{}
}

// AwaitingQuery reports whether the next text of key is a search query
func (s *Store) AwaitingQuery(key int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.awaiting[key]
	return ok
}

// SetSearch stores the search context and ends the query prompt
func (s *Store) SetSearch(key int64, query string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searches[key] = SearchContext{Query: query, Page: page}
	delete(s.awaiting, key)
}

// Search returns the stored search context
func (s *Store) Search(key int64) (SearchContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.searches[key]
	return sc, ok
}

// ClearSearch drops the search context and the query prompt
func (s *Store) ClearSearch(key int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.searches, key)
	delete(s.awaiting, key)
}

// Remember caches items shown to key
func (s *Store) Remember(key int64, items ...entities.Movie) {
	s.presented.Add(key, items...)
}

// Lookup returns an item previously shown to key
func (s *Store) Lookup(key int64, movieID int64) (entities.Movie, bool) {
	return s.presented.Get(key, movieID)
}

// Len returns the number of sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
