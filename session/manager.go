package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Info is one entry of Manager.List.
type Info struct {
	ID      string
	Started time.Time
}

// Manager keeps running sessions by id. Sessions are removed when their Run
// returns, whether through End, Stop or context cancellation.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*managed
	opts     Options
}

type managed struct {
	s       *Session
	started time.Time
}

// NewManager uses opts for every session it starts. opts.Rand is ignored so
// that sessions never share a generator.
func NewManager(opts Options) *Manager {
	opts.Rand = nil
	return &Manager{
		sessions: make(map[string]*managed),
		opts:     opts,
	}
}

// Start creates a session with a fresh id and runs it until ctx ends or the
// session is ended.
func (m *Manager) Start(ctx context.Context) *Session {
	s := New(uuid.NewString(), m.opts)
	s.OnEnd = m.remove

	m.mu.Lock()
	m.sessions[s.ID] = &managed{s: s, started: time.Now()}
	m.mu.Unlock()

	go s.Run(ctx)
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ms, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return ms.s, true
}

// End stops the session; it reports false for unknown ids.
func (m *Manager) End(id string) bool {
	s, ok := m.Get(id)
	if !ok {
		return false
	}
	s.Stop()
	return true
}

// List returns running sessions, oldest first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for id, ms := range m.sessions {
		out = append(out, Info{ID: id, Started: ms.started})
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Started.Before(out[j].Started) })
	return out
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
