package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
)

// DefaultSessionTTL is how long a login session stays valid without
// re-authentication.
const DefaultSessionTTL = 8 * time.Hour

// Session binds an opaque ID (carried in a cookie) to the Jira
// credentials supplied at login. Credentials never leave the process.
type Session struct {
	ID          string
	Credentials model.Credentials
	ExpiresAt   time.Time
}

// SessionStore is an in-memory session registry. Nothing outlives the
// process: a restart logs everyone out, which matches the original
// app's server-side session behavior.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a session store with the given TTL
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session for the credentials and returns it
func (s *SessionStore) Create(creds model.Credentials) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	sess := Session{
		ID:          uuid.NewString(),
		Credentials: creds,
		ExpiresAt:   s.now().Add(s.ttl),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session for the ID if it exists and has not expired
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return Session{}, false
	}
	return sess, true
}

// Delete removes the session, if present
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) purgeExpiredLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
