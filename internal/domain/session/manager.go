package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skinlab/skinanalyzer/pkg/util"
)

// Config controls session lifetime and the cosmetic progress cadence.
type Config struct {
	TTL              time.Duration
	ProgressInterval time.Duration
}

// Manager owns all live sessions. Sessions are in-memory only; an idle
// session is evicted after the TTL, taking its image and result with it.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	cfg      Config
	now      func() time.Time
}

// NewManager constructs the session registry.
func NewManager(cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 1500 * time.Millisecond
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		cfg:      cfg,
		now:      util.NowUTC,
	}
}

// Create registers a new session in the landing phase.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	sess := newSession(m.cfg.ProgressInterval, m.now)
	m.sessions[sess.ID()] = sess
	return sess
}

// Get returns the session for the given id.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// sweepLocked evicts sessions idle past the TTL, stopping their tickers.
func (m *Manager) sweepLocked() {
	now := m.now()
	for id, sess := range m.sessions {
		if sess.idleSince(now) > m.cfg.TTL {
			sess.shutdown()
			delete(m.sessions, id)
		}
	}
}
