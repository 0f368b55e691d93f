package manager

import "time"

// Close removes the session and shuts it down:
//   - Swaps the session out so new GetOrCreate calls fail with ErrSessionNotReady.
//   - Refuses new calls on the old session and waits for every in-flight call,
//     logging if that takes longer than the drain timeout.
//   - Stops the worker, which frees the engine.
//
// Close is idempotent. Call Reopen to allow a new session afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	s := m.cur.Swap(nil)
	log, pub := m.log, m.publisher
	m.mu.Unlock()
	if s == nil {
		return nil
	}

	start := time.Now()
	pub.Publish(Event{Name: EventUnloadStart, SessionID: s.id, ModelPath: s.modelPath,
		Fields: map[string]any{"active": s.ActiveCalls(), "queue": s.QueueLen()}})
	err := s.close()
	affinityPinned.Set(0)
	if err != nil {
		log.Warn().Err(err).Str("session_id", s.id).Msg("session closed with error")
	}
	log.Info().Str("session_id", s.id).Dur("drain", time.Since(start)).Msg("model session closed")
	pub.Publish(Event{Name: EventUnloadDone, SessionID: s.id, ModelPath: s.modelPath, Fields: map[string]any{}})
	return err
}

// Reopen allows sessions to be created again after Close.
func (m *Manager) Reopen() {
	m.mu.Lock()
	m.closed = false
	m.mu.Unlock()
}

// Closed reports whether Close was called without a later Reopen.
func (m *Manager) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
