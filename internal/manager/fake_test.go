package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auracore/internal/affinity"
)

// fakeAdapter counts constructions and hands out fakeEngines.
type fakeAdapter struct {
	starts   atomic.Int32
	failNext atomic.Int32
	delay    time.Duration
	gen      func(ctx context.Context, prompt string, onToken func(string) error) (FinalResult, error)

	mu         sync.Mutex
	engines    []*fakeEngine
	lastParams InferParams
}

func (a *fakeAdapter) Start(path string, params InferParams) (InferSession, error) {
	a.starts.Add(1)
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	if a.failNext.Load() > 0 {
		a.failNext.Add(-1)
		return nil, errors.New("corrupt model")
	}
	e := &fakeEngine{path: path, gen: a.gen}
	a.mu.Lock()
	a.lastParams = params
	a.engines = append(a.engines, e)
	a.mu.Unlock()
	return e, nil
}

func (a *fakeAdapter) last() *fakeEngine {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.engines) == 0 {
		return nil
	}
	return a.engines[len(a.engines)-1]
}

type fakeEngine struct {
	path    string
	gen     func(ctx context.Context, prompt string, onToken func(string) error) (FinalResult, error)
	calls   atomic.Int32
	closed  atomic.Bool
	threads atomic.Int32
}

func (e *fakeEngine) Generate(ctx context.Context, prompt string, onToken func(string) error) (FinalResult, error) {
	e.calls.Add(1)
	if e.closed.Load() {
		panic("generate on closed engine")
	}
	if e.gen != nil {
		return e.gen(ctx, prompt, onToken)
	}
	for _, tok := range strings.Fields("echo: " + prompt) {
		if err := onToken(tok + " "); err != nil {
			return FinalResult{}, err
		}
	}
	return FinalResult{FinishReason: "stop"}, nil
}

func (e *fakeEngine) Close() error {
	e.closed.Store(true)
	return nil
}

func (e *fakeEngine) SetThreads(n int) { e.threads.Store(int32(n)) }

type stubTopology struct {
	t   affinity.Topology
	err error
}

func (s stubTopology) Topology() (affinity.Topology, error) { return s.t, s.err }

func tieredTopology() stubTopology {
	return stubTopology{t: affinity.Topology{Cores: []affinity.Core{
		{ID: 0, Tier: 1800}, {ID: 1, Tier: 1800}, {ID: 2, Tier: 2400}, {ID: 3, Tier: 2400},
	}}}
}

func modelFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bitnet.gguf")
	require.NoError(t, os.WriteFile(p, []byte("GGUF"), 0o644))
	return p
}

func newTestManager(t *testing.T, a *fakeAdapter, mutate func(*ManagerConfig)) *Manager {
	t.Helper()
	cfg := ManagerConfig{
		Adapter:  a,
		Topology: tieredTopology(),
		Binder:   affinity.NoopBinder{},
		MaxWait:  2 * time.Second,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	m := NewWithConfig(cfg)
	t.Cleanup(func() { _ = m.Close() })
	return m
}
