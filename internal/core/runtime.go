// Package core ties the runtime together: the working memory pool, the
// model session manager and the request router, behind one lifecycle.
//
// A Runtime is safe for concurrent use. Initialize and Shutdown are
// serialized against each other; every other operation may run at any time
// and degrades to a defined failure when the runtime is not ready.
package core

import (
	"context"
	"math"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"auracore/internal/bootimage"
	"auracore/internal/manager"
	"auracore/internal/mempool"
	"auracore/internal/platform"
	"auracore/internal/router"
	"auracore/pkg/types"
)

const (
	// Version is reported by GetVersion.
	Version = "1.0.0-aurakai-core"
	// ReadinessLevel is the readiness score once initialized.
	ReadinessLevel = 0.998

	// Reported when the host does not expose load or thermal data.
	DefaultCPUUsage   = 12.5
	DefaultNeuralTemp = 38.2
)

// Runtime states.
const (
	StateUninitialized = "uninitialized"
	StateReady         = "ready"
	StateShutdown      = "shutdown"
)

// Sampler supplies host load figures. The bool is false when a reading is
// unavailable.
type Sampler interface {
	CPUUsage() (float64, bool)
	Temperature() (float64, bool)
}

// Config configures a Runtime.
type Config struct {
	// ModelPath is a model file or a directory holding one.
	ModelPath     string
	PoolSize      int
	PoolBlockSize int
	ProcfsRoot    string
	SysfsRoot     string
	// Manager is passed to manager.NewWithConfig. A nil Topology reads
	// sysfs at SysfsRoot.
	Manager manager.ManagerConfig
	// Sampler defaults to a procfs/sysfs LoadSampler.
	Sampler Sampler
}

// Runtime owns process-wide state.
type Runtime struct {
	// lifeMu serializes Initialize and Shutdown; mu guards the fields below.
	lifeMu    sync.Mutex
	mu        sync.RWMutex
	state     string
	ready     bool
	readiness float64
	pool      *mempool.Pool

	cfg     Config
	mgr     *manager.Manager
	router  *router.Router
	sampler Sampler
	hooks   atomic.Bool
	log     zerolog.Logger
	now     func() time.Time
}

// New builds an uninitialized Runtime.
func New(cfg Config) *Runtime {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = mempool.DefaultSize
	}
	if cfg.PoolBlockSize <= 0 {
		cfg.PoolBlockSize = mempool.DefaultBlockSize
	}
	if cfg.Manager.Topology == nil {
		cfg.Manager.Topology = platform.TopologySource(cfg.SysfsRoot)
	}
	sampler := cfg.Sampler
	if sampler == nil {
		sampler = platform.NewLoadSampler(cfg.ProcfsRoot, cfg.SysfsRoot)
	}
	return &Runtime{
		state:   StateUninitialized,
		cfg:     cfg,
		mgr:     manager.NewWithConfig(cfg.Manager),
		router:  router.New(),
		sampler: sampler,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
}

// SetLogger sets the logger for the runtime, its session manager and the
// topology source when it accepts one.
func (r *Runtime) SetLogger(l zerolog.Logger) {
	r.mu.Lock()
	r.log = l
	r.mu.Unlock()
	r.mgr.SetLogger(l.With().Str("component", "manager").Logger())
	if ls, ok := r.cfg.Manager.Topology.(interface{ SetLogger(zerolog.Logger) }); ok {
		ls.SetLogger(l.With().Str("component", "topology").Logger())
	}
}

// Manager exposes the session manager for status and diagnostics.
func (r *Runtime) Manager() *manager.Manager { return r.mgr }

func (r *Runtime) logger() zerolog.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.log
}

// Version returns the runtime version string.
func (r *Runtime) Version() string { return Version }

// Initialize allocates the working memory pool and marks the runtime ready.
// It returns false if the pool cannot be allocated. Calling it while ready
// is a no-op that returns true; calling it after Shutdown starts over.
func (r *Runtime) Initialize() bool {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()

	r.mu.RLock()
	ready := r.ready
	r.mu.RUnlock()
	if ready {
		return true
	}

	log := r.logger()
	pool, err := mempool.New(r.cfg.PoolSize, r.cfg.PoolBlockSize)
	if err != nil {
		log.Error().Err(err).Int("pool_size", r.cfg.PoolSize).Msg("memory pool allocation failed")
		return false
	}
	r.mgr.Reopen()

	r.mu.Lock()
	r.pool = pool
	r.readiness = ReadinessLevel
	r.ready = true
	r.state = StateReady
	r.mu.Unlock()

	log.Info().Int("pool_size", pool.Size()).Int("block_size", pool.BlockSize()).Msg("ai core initialized")
	return true
}

// Shutdown closes the model session, waiting for in-flight generate calls,
// then releases the memory pool. Safe to call any number of times.
func (r *Runtime) Shutdown() {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()

	r.mu.Lock()
	pool := r.pool
	wasUp := r.state != StateShutdown
	r.ready = false
	r.readiness = 0
	r.pool = nil
	r.state = StateShutdown
	log := r.log
	r.mu.Unlock()

	if err := r.mgr.Close(); err != nil {
		log.Warn().Err(err).Msg("model session close reported an error")
	}
	if pool != nil {
		pool.Release()
	}
	if wasUp {
		log.Info().Msg("ai core shut down")
	}
}

// Ready reports whether Initialize succeeded and Shutdown has not run.
func (r *Runtime) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// State returns uninitialized, ready or shutdown.
func (r *Runtime) State() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// ProcessRequest classifies text and returns the routed result. A nil text
// yields a failed result with null_request. It never touches the model.
func (r *Runtime) ProcessRequest(text *string) types.RequestResult {
	res, c := r.router.Process(text)
	kind := c.Kind.String()
	if text == nil {
		kind = "null"
	}
	routerRequestsTotal.WithLabelValues(kind).Inc()
	log := r.logger()
	log.Debug().Str("kind", kind).Str("keyword", c.Keyword).Str("status", res.Status).Msg("request routed")
	return res
}

// Generate produces local model output for prompt, creating the session on
// first use. A nil prompt is a NullInputError; an empty prompt returns an
// empty response without loading anything.
func (r *Runtime) Generate(ctx context.Context, prompt *string) (types.GenerateResponse, error) {
	if prompt == nil {
		return types.GenerateResponse{Status: types.StatusFailed}, &NullInputError{Code: CodeNullPrompt}
	}
	if *prompt == "" {
		return types.GenerateResponse{Status: types.StatusSuccess}, nil
	}
	s, err := r.mgr.GetOrCreate(ctx, r.cfg.ModelPath)
	if err != nil {
		return types.GenerateResponse{Status: types.StatusFailed}, err
	}
	text, err := s.Generate(ctx, *prompt)
	if err != nil {
		return types.GenerateResponse{Status: types.StatusFailed, SessionID: s.ID()}, err
	}
	return types.GenerateResponse{Status: types.StatusSuccess, Text: text, SessionID: s.ID()}, nil
}

// OptimizeMemory scrubs free pool blocks and returns freed heap to the OS.
// It returns false when the runtime is not initialized.
func (r *Runtime) OptimizeMemory() bool {
	r.mu.RLock()
	pool, ready, log := r.pool, r.ready, r.log
	r.mu.RUnlock()
	if !ready || pool == nil {
		return false
	}
	scrubbed := pool.Compact()
	debug.FreeOSMemory()
	log.Info().Int("scrubbed_bytes", scrubbed).Int("available", pool.Available()).Msg("memory optimized")
	return true
}

// EnableNativeHooks records the request. There are no hooks to install.
func (r *Runtime) EnableNativeHooks() {
	r.hooks.Store(true)
	log := r.logger()
	log.Info().Msg("native hooks enabled")
}

// HooksEnabled reports whether EnableNativeHooks was called.
func (r *Runtime) HooksEnabled() bool { return r.hooks.Load() }

// AnalyzeBootImage inspects data using a scratch lease from the memory
// pool, or a call-scoped buffer when no pool is allocated (before Initialize
// or after Shutdown). The returned analysis is always well formed; the error
// carries the same failure for logging.
func (r *Runtime) AnalyzeBootImage(data []byte) (types.BootAnalysis, error) {
	r.mu.RLock()
	pool, log := r.pool, r.log
	r.mu.RUnlock()

	var scratch bootimage.Borrower
	if pool != nil {
		scratch = pool
	}
	res, err := bootimage.Analyze(data, scratch, r.now())
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(data)).Msg("boot image rejected")
	}
	return res, err
}

// MetricsSnapshot reports runtime figures. Load and temperature fall back to
// fixed placeholders when the host does not expose them.
func (r *Runtime) MetricsSnapshot() types.SystemMetrics {
	r.mu.RLock()
	pool, ready, readiness := r.pool, r.ready, r.readiness
	r.mu.RUnlock()

	m := types.SystemMetrics{
		Status:         types.StatusInactive,
		CPUUsage:       DefaultCPUUsage,
		NeuralTemp:     DefaultNeuralTemp,
		ReadinessLevel: readiness,
	}
	if ready {
		m.Status = types.StatusActive
	}
	if pool != nil {
		m.MemoryPoolSize = pool.Size()
		m.MemoryPoolAvailable = pool.Available()
	}
	if v, ok := r.sampler.CPUUsage(); ok {
		m.CPUUsage = round1(v)
	}
	if v, ok := r.sampler.Temperature(); ok {
		m.NeuralTemp = round1(v)
	}
	if snap := r.mgr.Snapshot(); snap.State == manager.StateReady {
		m.SessionReady = true
		m.ActiveThreads = snap.Threads
		m.AffinityMask = snap.Mask.String()
		m.Pinned = snap.Pinned
	}
	return m
}

// Status reports runtime and session state for /status.
func (r *Runtime) Status() types.StatusResponse {
	st := r.mgr.Status()
	st.State = r.State()
	return st
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
