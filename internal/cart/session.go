package cart

import "sync"

// SessionStore maps shop session IDs to their carts. Carts live in memory
// only; nothing is persisted until checkout.
type SessionStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewSessionStore returns an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[string]*Cart)}
}

// GetOrCreate returns the cart for the session, creating it on first use.
func (s *SessionStore) GetOrCreate(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// Get returns the cart for the session, or nil when none exists.
func (s *SessionStore) Get(sessionID string) *Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[sessionID]
}

// Drop discards the session's cart, typically after a successful checkout.
func (s *SessionStore) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
}
