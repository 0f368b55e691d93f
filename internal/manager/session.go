package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"auracore/internal/affinity"
)

// Session is one loaded model plus the pinned worker that serves it. The
// model path is fixed at creation.
type Session struct {
	id            string
	requestedPath string
	modelPath     string
	createdAt     time.Time
	plan          affinity.Plan
	pinned        bool
	threads       int

	calls      chan *call
	queueCh    chan struct{}
	workerDone chan struct{}
	busy       atomic.Bool

	mu       sync.Mutex
	closing  bool
	inflight sync.WaitGroup
	active   atomic.Int64
	stopOnce sync.Once
	closeErr error

	maxWait         time.Duration
	drainTimeout    time.Duration
	generateTimeout time.Duration
	log             zerolog.Logger
	publisher       EventPublisher
}

func (s *Session) ID() string { return s.id }
func (s *Session) ModelPath() string { return s.modelPath }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) Mask() affinity.Mask { return s.plan.Mask }
func (s *Session) Plan() affinity.Plan { return s.plan }
func (s *Session) Pinned() bool { return s.pinned }
func (s *Session) Threads() int { return s.threads }
func (s *Session) QueueLen() int { return len(s.queueCh) }
func (s *Session) MaxQueueDepth() int { return cap(s.queueCh) }
func (s *Session) Done() <-chan struct{} { return s.workerDone }
func (s *Session) ActiveCalls() int { return int(s.active.Load()) }

// Inflight is 1 while the worker is inside the engine.
func (s *Session) Inflight() int {
	if s.busy.Load() {
		return 1
	}
	return 0
}

// State reports StateReady until close begins.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return StateClosing
	}
	return StateReady
}

// acquire registers a call. It fails once the session is closing.
func (s *Session) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.inflight.Add(1)
	s.active.Add(1)
	return true
}

func (s *Session) release() {
	s.active.Add(-1)
	s.inflight.Done()
}

// close stops accepting calls, waits for every acquired call to return, then
// stops the worker, which frees the engine. Safe to call concurrently; every
// caller returns after the engine is freed.
func (s *Session) close() error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()

		drained := make(chan struct{})
		go func() {
			s.inflight.Wait()
			close(drained)
		}()
		select {
		case <-drained:
		case <-time.After(s.drainTimeout):
			s.log.Warn().Str("session_id", s.id).Int64("active", s.active.Load()).
				Dur("waited", s.drainTimeout).Msg("session drain slow; still waiting for in-flight calls")
			s.publisher.Publish(Event{Name: EventDrainTimeout, SessionID: s.id, ModelPath: s.modelPath,
				Fields: map[string]any{"active": s.active.Load()}})
			<-drained
		}
		// No sender can exist past this point: all acquired calls returned
		// and new ones are refused.
		close(s.calls)
	})
	<-s.workerDone
	return s.closeErr
}
