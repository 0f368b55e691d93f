package manager

import (
	"time"

	"github.com/rs/zerolog"

	"auracore/internal/affinity"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth   = 32
	defaultMaxWait         = 30 * time.Second
	defaultDrainTimeout    = 10 * time.Second
	defaultGenerateTimeout = 2 * time.Minute
	defaultContextSize     = 2048
	defaultMaxTokens       = 256

	// defaultSeed keeps sampling reproducible when no seed is configured.
	// A negative seed asks llama.cpp for a random one.
	defaultSeed = 42
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Adapter opens models. Nil selects the llama adapter (a stub unless
	// built with -tags=llama).
	Adapter InferenceAdapter
	Params  InferParams

	// Affinity. Topology feeds the planner; nil falls back to every core.
	// Binder nil selects affinity.DefaultBinder(). DisablePinning skips
	// binding entirely.
	Topology       affinity.TopologySource
	Binder         affinity.Binder
	DisablePinning bool
	// Threads overrides the engine thread count; 0 sizes it to the mask.
	Threads int

	MaxQueueDepth   int
	MaxWait         time.Duration
	DrainTimeout    time.Duration
	GenerateTimeout time.Duration
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		adapter:         cfg.Adapter,
		params:          cfg.Params,
		planner:         affinity.NewPlanner(cfg.Topology),
		binder:          cfg.Binder,
		threads:         cfg.Threads,
		maxQueueDepth:   cfg.MaxQueueDepth,
		maxWait:         cfg.MaxWait,
		drainTimeout:    cfg.DrainTimeout,
		generateTimeout: cfg.GenerateTimeout,
		log:             zerolog.Nop(),
		publisher:       noopPublisher{},
		startTime:       time.Now(),
	}
	// Apply defaults if unset
	if m.params.ContextSize <= 0 {
		m.params.ContextSize = defaultContextSize
	}
	if m.params.MaxTokens <= 0 {
		m.params.MaxTokens = defaultMaxTokens
	}
	if m.params.Seed == 0 {
		m.params.Seed = defaultSeed
	}
	if m.maxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	}
	if m.maxWait <= 0 {
		m.maxWait = defaultMaxWait
	}
	if m.drainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	}
	if m.generateTimeout <= 0 {
		m.generateTimeout = defaultGenerateTimeout
	}
	if cfg.DisablePinning {
		m.binder = nil
	} else if m.binder == nil {
		m.binder = affinity.DefaultBinder()
	}
	if m.adapter == nil {
		m.adapter = NewLlamaAdapter(m.params.ContextSize, m.threads)
	}
	return m
}
