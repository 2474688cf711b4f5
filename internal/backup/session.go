package backup

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// SessionRegistry tracks active backup sessions so that at most one
// backup runs per profile at a time. A registry is safe for concurrent
// use; independent Managers can share one to coordinate process-wide.
type SessionRegistry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{active: make(map[string]struct{})}
}

// Acquire registers a session identity. It returns ErrSessionActive if
// the identity is already registered.
func (r *SessionRegistry) Acquire(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.active[id]; ok {
		return errors.Wrapf(ErrSessionActive, "session %s", id)
	}
	r.active[id] = struct{}{}
	return nil
}

// Release removes a session identity. Releasing an unregistered
// identity is a no-op.
func (r *SessionRegistry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, id)
}

// Active reports whether the identity is currently registered.
func (r *SessionRegistry) Active(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[id]
	return ok
}
