package manager

import (
	"context"
	"time"
)

// submit reserves a queue slot, hands c to the worker, and waits for the
// result. The slot is held until the call returns so queue length counts
// both waiting and running calls.
func (s *Session) submit(ctx context.Context, c *call) (string, error) {
	wait := time.NewTimer(s.maxWait)
	defer wait.Stop()

	// Try to reserve a queue slot with timeout
	select {
	case s.queueCh <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-wait.C:
		return "", tooBusyError{stage: "queue"}
	}
	defer func() { <-s.queueCh }()

	// Hand off to the single worker
	select {
	case s.calls <- c:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-wait.C:
		return "", tooBusyError{stage: "worker"}
	}

	select {
	case r := <-c.done:
		return r.text, r.err
	case <-ctx.Done():
		// The worker still delivers into the buffered done channel.
		return "", ctx.Err()
	}
}
