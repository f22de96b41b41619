package session

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pronoysaha90/AuraAntique/internal/metrics"
	"github.com/Pronoysaha90/AuraAntique/internal/notify"
)

// Config bounds how many sessions are kept and for how long.
type Config struct {
	IdleTimeout time.Duration
	MaxSessions int
	InboxSize   int
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Manager is the registry of live sessions. Least recently used sessions are
// evicted once MaxSessions is reached, and idle ones by Run.
type Manager struct {
	cfg     Config
	sink    notify.Notifier
	logger  *slog.Logger
	onNew   []func(*Session)
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List
}

// NewManager creates a registry. Every session's toasts also go to sink.
func NewManager(cfg Config, sink notify.Notifier, logger *slog.Logger) *Manager {
	if cfg.MaxSessions < 1 {
		cfg.MaxSessions = 1
	}
	return &Manager{
		cfg:     cfg,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// OnCreate registers fn to run for each new session before it is returned.
// Register hooks before serving traffic.
func (m *Manager) OnCreate(fn func(*Session)) {
	m.onNew = append(m.onNew, fn)
}

// Get returns the live session with id and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	m.touch(el)
	return el.Value.(*entry).session, true
}

// Lookup returns the live session for a client-supplied id. Empty, malformed
// and expired ids all miss; callers decide whether to Create.
func (m *Manager) Lookup(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	return m.Get(id)
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m.cfg.InboxSize, m.sink)
	for _, fn := range m.onNew {
		fn(s)
	}

	m.mu.Lock()
	m.entries[s.ID] = m.lru.PushFront(&entry{session: s, lastSeen: m.now()})
	for m.lru.Len() > m.cfg.MaxSessions {
		m.remove(m.lru.Back(), "capacity")
	}
	metrics.ActiveSessions.Set(float64(m.lru.Len()))
	m.mu.Unlock()

	return s
}

// Delete forgets a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[id]; ok {
		m.remove(el, "deleted")
		metrics.ActiveSessions.Set(float64(m.lru.Len()))
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// Sweep evicts sessions idle for longer than IdleTimeout and returns how many
// it removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.cfg.IdleTimeout)
	removed := 0
	for el := m.lru.Back(); el != nil; {
		e := el.Value.(*entry)
		if !e.lastSeen.Before(cutoff) {
			break
		}
		prev := el.Prev()
		m.remove(el, "idle")
		removed++
		el = prev
	}
	metrics.ActiveSessions.Set(float64(m.lru.Len()))
	return removed
}

// Run sweeps idle sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	interval := m.cfg.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Info("evicted idle sessions", slog.Int("count", n))
			}
		}
	}
}

func (m *Manager) touch(el *list.Element) {
	el.Value.(*entry).lastSeen = m.now()
	m.lru.MoveToFront(el)
}

func (m *Manager) remove(el *list.Element, reason string) {
	e := el.Value.(*entry)
	m.lru.Remove(el)
	delete(m.entries, e.session.ID)
	metrics.SessionsEvicted.WithLabelValues(reason).Inc()
}
