package session

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"clinic-concierge-be/pkg/llm"
)

// Store keeps per-session conversation history in process memory with a
// sliding TTL. History is a flat list of chat messages in turn order.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

// NewStore builds a store whose entries expire ttlHours after their last
// write. A non-positive ttlHours disables expiration.
func NewStore(ttlHours int) *Store {
	ttl := gocache.NoExpiration
	if ttlHours > 0 {
		ttl = time.Duration(ttlHours) * time.Hour
	}
	return &Store{
		cache: gocache.New(ttl, 30*time.Minute),
		ttl:   ttl,
	}
}

// History returns a copy of the session's messages, oldest first. An
// unknown session id yields an empty history.
func (s *Store) History(sessionID string) []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, found := s.cache.Get(sessionID); found {
		msgs := v.([]llm.Message)
		out := make([]llm.Message, len(msgs))
		copy(out, msgs)
		return out
	}
	return nil
}

// Append adds messages to the session, creating it on first use and
// refreshing its TTL.
func (s *Store) Append(sessionID string, messages ...llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []llm.Message
	if v, found := s.cache.Get(sessionID); found {
		history = v.([]llm.Message)
	}
	history = append(history, messages...)
	s.cache.Set(sessionID, history, s.ttl)
}

// Reset discards the session's history. Resetting an unknown session is
// a no-op.
func (s *Store) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionID)
}
