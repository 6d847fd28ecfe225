package service

import (
	"sync"

	"github.com/salonpoint/pos-api/internal/domain/entity"
)

// SessionStore owns the single in-flight invoice session. All reads go
// through Current (which returns a clone) and all writes go through Mutate,
// so stage handlers never share mutable state. The single-session model
// matches the single-operator, single-register deployment: there is never
// more than one transaction being built per process.
type SessionStore struct {
	mu      sync.Mutex
	session *entity.InvoiceSession
}

// NewSessionStore creates a store holding a fresh session
func NewSessionStore() *SessionStore {
	return &SessionStore{session: entity.NewInvoiceSession()}
}

// Current returns a snapshot of the session. Mutating the snapshot has no
// effect on the stored session.
func (s *SessionStore) Current() *entity.InvoiceSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Mutate applies fn to the session under the store lock. If fn returns an
// error the session is left exactly as fn left it only when the mutation
// succeeded: fn operates on a clone, and the clone replaces the stored
// session only on success. The version counter is bumped on every applied
// mutation.
func (s *SessionStore) Mutate(fn func(*entity.InvoiceSession) error) (*entity.InvoiceSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.session.Clone()
	if err := fn(next); err != nil {
		return s.session.Clone(), err
	}
	next.Version = s.session.Version + 1
	s.session = next
	return next.Clone(), nil
}

// Reset replaces the session with a fresh one at SelectService and
// returns the new snapshot.
func (s *SessionStore) Reset() *entity.InvoiceSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := entity.NewInvoiceSession()
	fresh.Version = s.session.Version + 1
	s.session = fresh
	return fresh.Clone()
}
