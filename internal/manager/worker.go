package manager

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"auracore/internal/affinity"
)

type call struct {
	ctx    context.Context
	prompt string
	done   chan callResult
}

type callResult struct {
	text string
	err  error
}

type bindResult struct {
	pinned bool
	err    error
}

// run is the session worker. It locks its OS thread for its whole life and
// binds that thread to the plan's mask, so threads the engine spawns from
// here inherit the affinity. The thread is never unlocked; Go retires it
// when the goroutine exits.
func (s *Session) run(engine InferSession, binder affinity.Binder, bound chan<- bindResult) {
	runtime.LockOSThread()
	defer close(s.workerDone)
	defer func() {
		if err := engine.Close(); err != nil {
			s.closeErr = err
			s.log.Error().Err(err).Str("session_id", s.id).Msg("engine close failed")
		}
	}()

	var br bindResult
	if binder != nil {
		br.err = binder.Bind(s.plan.Mask)
		br.pinned = br.err == nil
	}
	bound <- br

	for c := range s.calls {
		s.busy.Store(true)
		c.done <- s.execute(engine, c)
		s.busy.Store(false)
	}
}

// execute runs one call. Calls whose context is already done never reach
// the engine; engine panics come back as errors.
func (s *Session) execute(engine InferSession, c *call) (res callResult) {
	if err := c.ctx.Err(); err != nil {
		return callResult{err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("session_id", s.id).Interface("panic", r).Msg("inference engine panic recovered")
			res = callResult{err: fmt.Errorf("inference engine panic: %v", r)}
		}
	}()
	var sb strings.Builder
	final, err := engine.Generate(c.ctx, c.prompt, func(tok string) error {
		sb.WriteString(tok)
		return nil
	})
	if err != nil {
		return callResult{err: err}
	}
	if final.Content != "" {
		return callResult{text: final.Content}
	}
	return callResult{text: sb.String()}
}
