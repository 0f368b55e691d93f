package manager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GetOrCreate returns the live session, creating it from modelPath on first
// use. Concurrent first calls construct exactly once. The path only matters
// for the call that constructs: a later call naming a different model gets
// the existing session back and a warning is logged.
//
// A failed construction returns a *ModelLoadError and leaves nothing behind,
// so the next call retries from scratch.
func (m *Manager) GetOrCreate(ctx context.Context, modelPath string) (*Session, error) {
	if s := m.cur.Load(); s != nil {
		warnPathIgnored(m.logger(), m.pub(), s, modelPath)
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrSessionNotReady
	}
	if s := m.cur.Load(); s != nil {
		warnPathIgnored(m.log, m.publisher, s, modelPath)
		return s, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := m.createLocked(modelPath)
	if err != nil {
		return nil, err
	}
	m.cur.Store(s)
	return s, nil
}

// createLocked builds a session. Caller holds m.mu.
func (m *Manager) createLocked(modelPath string) (*Session, error) {
	start := time.Now()
	resolved, err := resolveModelPath(modelPath)
	if err != nil {
		return nil, m.loadFailedLocked(modelPath, err)
	}
	engine, err := startEngine(m.adapter, resolved, m.params)
	if err != nil {
		return nil, m.loadFailedLocked(resolved, err)
	}

	plan := m.planner.Plan()
	if plan.Warning != nil {
		m.log.Warn().Err(plan.Warning).Str("mask", plan.Mask.String()).Msg("cpu topology unavailable; using all cores")
	}
	threads := threadCount(m.threads, plan.Mask.Len())
	if tt, ok := engine.(ThreadTuner); ok {
		tt.SetThreads(threads)
	}

	s := &Session{
		id:              uuid.NewString(),
		requestedPath:   modelPath,
		modelPath:       resolved,
		createdAt:       time.Now(),
		plan:            plan,
		threads:         threads,
		calls:           make(chan *call),
		queueCh:         make(chan struct{}, m.maxQueueDepth),
		workerDone:      make(chan struct{}),
		maxWait:         m.maxWait,
		drainTimeout:    m.drainTimeout,
		generateTimeout: m.generateTimeout,
		publisher:       m.publisher,
	}
	s.log = m.log.With().Str("session_id", s.id).Logger()

	bound := make(chan bindResult, 1)
	go s.run(engine, m.binder, bound)
	br := <-bound
	s.pinned = br.pinned

	switch {
	case br.err != nil:
		// Degrade, don't fail: the session works unpinned.
		s.log.Warn().Err(br.err).Str("mask", plan.Mask.String()).Msg("cpu affinity bind failed; running unpinned")
		m.publisher.Publish(Event{Name: EventAffinityDegraded, SessionID: s.id, ModelPath: resolved,
			Fields: map[string]any{"mask": plan.Mask.String(), "error": br.err.Error()}})
	case m.binder == nil:
		s.log.Info().Msg("cpu pinning disabled")
	}
	if s.pinned {
		affinityPinned.Set(1)
	} else {
		affinityPinned.Set(0)
	}

	m.loads.Add(1)
	sessionLoadsTotal.Inc()
	m.setLastError(nil)
	s.log.Info().
		Str("model_path", resolved).
		Str("mask", plan.Mask.String()).
		Str("affinity_source", string(plan.Source)).
		Bool("pinned", s.pinned).
		Int("threads", threads).
		Dur("load_time", time.Since(start)).
		Msg("model session ready")
	m.publisher.Publish(Event{Name: EventSessionReady, SessionID: s.id, ModelPath: resolved,
		Fields: map[string]any{"mask": plan.Mask.String(), "pinned": s.pinned, "threads": threads}})
	return s, nil
}

func (m *Manager) loadFailedLocked(path string, err error) error {
	lerr := &ModelLoadError{Path: path, Err: err}
	m.loadFailures.Add(1)
	sessionLoadFailuresTotal.Inc()
	m.setLastError(lerr)
	m.log.Error().Err(err).Str("model_path", path).Msg("model load failed")
	m.publisher.Publish(Event{Name: EventLoadFailed, ModelPath: path, Fields: map[string]any{"error": err.Error()}})
	return lerr
}

func warnPathIgnored(log zerolog.Logger, pub EventPublisher, s *Session, requested string) {
	if requested == "" || requested == s.requestedPath || requested == s.modelPath {
		return
	}
	log.Warn().
		Str("session_id", s.id).
		Str("requested", requested).
		Str("loaded", s.modelPath).
		Msg("model path ignored; session already loaded")
	pub.Publish(Event{Name: EventModelPathIgnored, SessionID: s.id, ModelPath: s.modelPath,
		Fields: map[string]any{"requested": requested}})
}
