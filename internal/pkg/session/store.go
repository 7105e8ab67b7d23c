// Package session implements a server-side session store keyed by an opaque
// cookie token. Clients only ever hold the token; all state lives behind it,
// so identity claims cannot be forged by tampering with client-held data.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abroadly/abroadly/internal/pkg/apperrors"
)

// Well-known slot names. Handlers never touch these directly; they go through
// the typed accessors on Session so a slot-name typo cannot silently resolve
// a request as anonymous.
const (
	slotStudentID = "student_id"
	slotAlumniID  = "alumni_id"
)

// Store is the server-side session storage contract. Slot writes are
// last-write-wins; no cross-slot atomicity is provided or needed, since the
// two identity slots are written by disjoint login flows.
type Store interface {
	// Create allocates a new session and returns its opaque token.
	Create(ctx context.Context) (string, error)
	// GetSlot returns the raw JSON value of a named slot. The second return
	// is false when the slot or the session is absent or expired. Reading a
	// live session extends its lifetime by the store's ttl.
	GetSlot(ctx context.Context, token, slot string) (json.RawMessage, bool, error)
	// SetSlot writes a named slot. Returns apperrors.ErrSessionNotFound when
	// the session does not exist.
	SetSlot(ctx context.Context, token, slot string, value interface{}) error
	// DeleteSlot removes a single slot, leaving the rest of the session
	// intact. Deleting an absent slot is a no-op.
	DeleteSlot(ctx context.Context, token, slot string) error
	// Destroy removes the whole session. Destroying an absent session is a
	// no-op.
	Destroy(ctx context.Context, token string) error
}

// MemoryStore is an in-process Store used by tests and single-node setups.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*memorySession
}

type memorySession struct {
	data      map[string]json.RawMessage
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore with the given session lifetime.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
	}
}

func (s *MemoryStore) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &memorySession{
		data:      make(map[string]json.RawMessage),
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

// live returns the session for token if it exists and has not expired.
// Callers must hold at least a read lock.
func (s *MemoryStore) live(token string) (*memorySession, bool) {
	sess, ok := s.sessions[token]
	if !ok || time.Now().After(sess.expiresAt) {
		return nil, false
	}
	return sess, true
}

func (s *MemoryStore) GetSlot(ctx context.Context, token, slot string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(token)
	if !ok {
		return nil, false, nil
	}
	sess.expiresAt = time.Now().Add(s.ttl)
	value, ok := sess.data[slot]
	return value, ok, nil
}

func (s *MemoryStore) SetSlot(ctx context.Context, token, slot string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(token)
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	sess.data[slot] = raw
	return nil
}

func (s *MemoryStore) DeleteSlot(ctx context.Context, token, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.live(token); ok {
		delete(sess.data, slot)
	}
	return nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}
