package manager

import (
	"context"
	"errors"
	"time"
)

// Generate runs prompt through the engine on the session's worker. An empty
// prompt returns "" without reaching the engine. Calls without a deadline
// are bounded by the configured generate timeout.
func (s *Session) Generate(ctx context.Context, prompt string) (string, error) {
	if !s.acquire() {
		return "", ErrSessionNotReady
	}
	defer s.release()
	if prompt == "" {
		return "", nil
	}
	if _, ok := ctx.Deadline(); !ok && s.generateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.generateTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.submit(ctx, &call{ctx: ctx, prompt: prompt, done: make(chan callResult, 1)})
	generateDuration.Observe(time.Since(start).Seconds())
	generateTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		s.log.Debug().Err(err).Str("session_id", s.id).Msg("generate failed")
	}
	return text, err
}

// Generate returns the engine's response for prompt, creating the session
// from modelPath on first use. An empty prompt never creates a session.
func (m *Manager) Generate(ctx context.Context, modelPath, prompt string) (string, error) {
	if prompt == "" {
		return "", nil
	}
	s, err := m.GetOrCreate(ctx, modelPath)
	if err != nil {
		return "", err
	}
	return s.Generate(ctx, prompt)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsTooBusy(err):
		return "too_busy"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case IsSessionNotReady(err):
		return "not_ready"
	default:
		return "error"
	}
}
