// internal/store/memory.go
//
// In-memory registry of live game sessions for the HTTP play API.
// Sessions vanish when the process restarts; nothing is persisted.
//
// Characteristics:
//   - Sessions keyed by a random UUID.
//   - Registry guarded by an RWMutex (concurrent lookups, exclusive inserts).
//   - Each entry has its own mutex; a session is driven by one request at a time.
//   - Entries idle past a cutoff are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
)

// ErrNotFound reports an unknown session ID.
var ErrNotFound = errors.New("store: session not found")

// Store defines the registry interface for live sessions.
type Store interface {
	// Create registers s and returns its new ID.
	Create(ctx context.Context, s *game.Session) (string, error)

	// With runs fn with exclusive access to the session stored under id.
	With(ctx context.Context, id string, fn func(s *game.Session) error) error

	// Sweep drops sessions last used before cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	mu       sync.Mutex
	session  *game.Session
	lastUsed atomic.Int64 // unix nanoseconds
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*entry // keyed by session ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Create(ctx context.Context, s *game.Session) (string, error) {
	id := uuid.NewString()
	e := &entry{session: s}
	e.lastUsed.Store(m.now().UnixNano())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = e
	return id, nil
}

func (m *memory) With(ctx context.Context, id string, fn func(s *game.Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.lastUsed.Store(m.now().UnixNano())
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	limit := cutoff.UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.lastUsed.Load() < limit {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
