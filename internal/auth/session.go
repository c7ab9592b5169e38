package auth

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps opaque bearer tokens to user ids. Tokens never expire.
type SessionStore struct {
	tokens map[string]int
	mutex  sync.RWMutex
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		tokens: make(map[string]int),
	}
}

// Issue binds a new random token to userID and returns it.
func (s *SessionStore) Issue(userID int) string {
	token := uuid.NewString()

	s.mutex.Lock()
	s.tokens[token] = userID
	s.mutex.Unlock()

	return token
}

// Resolve returns the user id bound to token. A missing token means the
// caller is unauthenticated; it is not an error.
func (s *SessionStore) Resolve(token string) (int, bool) {
	if token == "" {
		return 0, false
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	userID, exists := s.tokens[token]
	return userID, exists
}

// Count returns the number of issued tokens
func (s *SessionStore) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.tokens)
}
