package variants

import (
	"errors"
	"sync"
	"time"

	"catalog-manager/core/reconcile"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("drift session not found")

// Sessions is the registry of open editing sessions.
type Sessions struct {
	mu    sync.Mutex
	items map[string]*reconcile.Session
	ttl   time.Duration
	now   func() time.Time
}

// NewSessions creates a registry. A zero ttl keeps sessions until removed.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		items: make(map[string]*reconcile.Session),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Open creates a session for a product.
func (m *Sessions) Open(productID string, calc reconcile.Calculator) *reconcile.Session {
	sess := reconcile.NewSession(uuid.NewString(), productID, calc)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[sess.ID] = sess
	return sess
}

// Get returns an open session.
func (m *Sessions) Get(id string) (*reconcile.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close removes a session.
func (m *Sessions) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
}

// Len returns the number of open sessions.
func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Prune drops sessions idle past the ttl and returns how many were dropped.
// Sessions with a commit in flight are kept.
func (m *Sessions) Prune() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, sess := range m.items {
		if sess.Committing() || sess.LastActivity().After(cutoff) {
			continue
		}
		delete(m.items, id)
		dropped++
	}
	return dropped
}
