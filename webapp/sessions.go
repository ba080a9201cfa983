package webapp

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	Username  string
	CreatedAt time.Time
}

// SessionStore holds server-side sessions keyed by opaque token. Sessions
// live until logout or process exit; there is no persistence.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session)}
}

// Create opens a session for username and returns its token.
func (s *SessionStore) Create(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{Username: username, CreatedAt: time.Now()}
	s.mu.Unlock()
	return token
}

// Get returns the username bound to token, if the session exists.
func (s *SessionStore) Get(token string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	return sess.Username, ok
}

// Delete ends the session for token; unknown tokens are ignored.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
