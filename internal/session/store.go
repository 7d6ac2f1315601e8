package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// sessionTTL bounds how long an abandoned session is kept before sweeping.
const sessionTTL = 2 * time.Hour

type entry struct {
	pipeline *Pipeline
	touched  time.Time
}

// Store keeps live interview sessions keyed by ID. Each pipeline is
// single-writer; the store serializes all access to a session through With.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create registers a new pipeline and returns its session ID.
func (s *Store) Create(p *Pipeline) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &entry{pipeline: p, touched: s.now()}
	return id
}

// With runs fn against the session's pipeline while holding the store lock,
// so pipeline operations never interleave.
func (s *Store) With(id string, fn func(*Pipeline) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	e.touched = s.now()
	return fn(e.pipeline)
}

// Delete removes a finished session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were
// removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := s.now().Add(-sessionTTL)
	for id, e := range s.sessions {
		if e.touched.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
