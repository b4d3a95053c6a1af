package service

import (
	"sync"
	"time"
)

// Session links a widget opened in the browser back to the token and order of its attempt.
type Session struct {
	ID              string
	AttemptID       string
	Token           string
	TransactionID   string
	RazorpayOrderID string
	Amount          string
	Email           string
	ExpiresAt       time.Time
}

type SessionStore interface {
	Put(session *Session)
	// Peek returns a live session without consuming it.
	Peek(id string) (*Session, bool)
	// Take removes and returns the session; expired sessions are reported as missing.
	Take(id string) (*Session, bool)
	Len() int
}

type memorySessionStoreImpl struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemorySessionStore(now func() time.Time) SessionStore {
	if now == nil {
		now = time.Now
	}
	return &memorySessionStoreImpl{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

func (s *memorySessionStoreImpl) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.sessions[session.ID] = session
}

func (s *memorySessionStoreImpl) Peek(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return session, true
}

func (s *memorySessionStoreImpl) Take(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	delete(s.sessions, id)

	if !s.now().Before(session.ExpiresAt) {
		return nil, false
	}
	return session, true
}

func (s *memorySessionStoreImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	return len(s.sessions)
}

func (s *memorySessionStoreImpl) sweepLocked() {
	now := s.now()
	for id, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
