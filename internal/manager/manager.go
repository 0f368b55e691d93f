package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"auracore/internal/affinity"
)

// Manager owns at most one Session. The zero value is not usable; construct
// with New or NewWithConfig.
type Manager struct {
	// cur is the fast path; mu guards construction and the closed flag.
	cur    atomic.Pointer[Session]
	mu     sync.Mutex
	closed bool

	adapter InferenceAdapter
	params  InferParams
	planner *affinity.Planner
	binder  affinity.Binder
	threads int

	// Queue config
	maxQueueDepth   int
	maxWait         time.Duration
	drainTimeout    time.Duration
	generateTimeout time.Duration

	log       zerolog.Logger
	publisher EventPublisher

	loads        atomic.Uint64
	loadFailures atomic.Uint64
	errMu        sync.RWMutex
	lastErr      string
	startTime    time.Time
}

// New returns a Manager with package defaults around adapter.
func New(adapter InferenceAdapter) *Manager {
	return NewWithConfig(ManagerConfig{Adapter: adapter})
}

// SetLogger sets the logger used for session lifecycle and affinity warnings.
func (m *Manager) SetLogger(l zerolog.Logger) {
	m.mu.Lock()
	m.log = l
	m.mu.Unlock()
}

// SetEventPublisher sets the event sink. Nil restores the no-op publisher.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
	m.mu.Unlock()
}

// SetInferenceAdapter replaces the adapter used for future sessions.
func (m *Manager) SetInferenceAdapter(a InferenceAdapter) {
	m.mu.Lock()
	m.adapter = a
	m.mu.Unlock()
}

// Ready reports whether a session exists and accepts calls.
func (m *Manager) Ready() bool {
	s := m.cur.Load()
	return s != nil && s.State() == StateReady
}

// Current returns the live session, or nil.
func (m *Manager) Current() *Session { return m.cur.Load() }

// Loads is the number of successful session constructions.
func (m *Manager) Loads() uint64 { return m.loads.Load() }

func (m *Manager) setLastError(err error) {
	m.errMu.Lock()
	defer m.errMu.Unlock()
	if err == nil {
		m.lastErr = ""
		return
	}
	m.lastErr = err.Error()
}

// LastError returns the most recent construction failure, if any.
func (m *Manager) LastError() string {
	m.errMu.RLock()
	defer m.errMu.RUnlock()
	return m.lastErr
}

// logger and pub read the mutable collaborators without holding mu for the
// caller's whole operation.
func (m *Manager) logger() zerolog.Logger {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log
}

func (m *Manager) pub() EventPublisher {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.publisher
}
