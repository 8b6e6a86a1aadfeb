// Package session keeps one set of record stores per browser session.
package session

import (
	"sync"
	"time"

	"ams-app/internal/store"

	"github.com/google/uuid"
)

// Workspace is the server-side state of one session. Callers hold Lock for
// the whole request so interactions in a session run one at a time.
type Workspace struct {
	ID    string
	Store *store.Store

	mu       sync.Mutex
	lastSeen time.Time
}

func (w *Workspace) Lock()   { w.mu.Lock() }
func (w *Workspace) Unlock() { w.mu.Unlock() }

type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace

	ttl      time.Duration
	newStore func() *store.Store
	now      func() time.Time
}

type Option func(*Registry)

// WithTTL sets the idle time after which a workspace is discarded; 0 keeps
// workspaces until Discard.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) { r.ttl = ttl }
}

func WithStoreFactory(f func() *store.Store) Option {
	return func(r *Registry) { r.newStore = f }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		workspaces: make(map[string]*Workspace),
		newStore:   func() *store.Store { return store.New() },
		now:        time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Acquire returns the live workspace for id, or a fresh empty one under a
// new ID when id is unknown or expired.
func (r *Registry) Acquire(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.pruneLocked(now)

	if w, ok := r.workspaces[id]; ok && id != "" {
		w.lastSeen = now
		return w
	}

	w := &Workspace{
		ID:       uuid.NewString(),
		Store:    r.newStore(),
		lastSeen: now,
	}
	r.workspaces[w.ID] = w
	return w
}

// Discard drops the workspace and everything it holds.
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	delete(r.workspaces, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Prune removes workspaces idle for longer than the TTL.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pruneLocked(r.now())
}

func (r *Registry) pruneLocked(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	removed := 0
	for id, w := range r.workspaces {
		if now.Sub(w.lastSeen) > r.ttl {
			delete(r.workspaces, id)
			removed++
		}
	}
	return removed
}
