package discovery

import (
	"sync"
	"time"

	"github.com/wanderio/trek-finder/pkg/types"
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Manager hands out one Session per storefront visitor, keyed by the
// session cookie id, and evicts sessions that have gone idle.
type Manager struct {
	mu       sync.Mutex
	client   Catalog
	track    types.Tracking
	sessions map[int]*entry

	PageSize int
	Debounce time.Duration
	Ttl      time.Duration
}

func NewManager(client Catalog, track types.Tracking) *Manager {
	return &Manager{
		client:   client,
		track:    track,
		sessions: make(map[int]*entry),
		PageSize: 12,
		Debounce: DefaultDebounce,
		Ttl:      30 * time.Minute,
	}
}

// Get returns the session for the id, creating it on first sight.
func (m *Manager) Get(id int) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		e = &entry{session: NewSession(id, m.client, m.track, m.PageSize, m.Debounce)}
		m.sessions[id] = e
	}
	e.lastSeen = time.Now()
	return e.session
}

// Teardown discards a session, invoked when the visitor navigates away.
func (m *Manager) Teardown(id int) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if ok {
		e.session.Teardown()
	}
}

// Sweep evicts sessions idle longer than the ttl and returns how many were
// dropped.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var stale []*entry
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.Ttl {
			stale = append(stale, e)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, e := range stale {
		e.session.Teardown()
	}
	return len(stale)
}

// StartSweeper runs Sweep on an interval until the returned stop function
// is called.
func (m *Manager) StartSweeper(interval time.Duration) func() {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				m.Sweep(now)
			}
		}
	}()
	return func() { close(done) }
}
