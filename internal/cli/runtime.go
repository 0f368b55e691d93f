package cli

import (
	"github.com/rs/zerolog"

	"auracore/internal/config"
	"auracore/internal/core"
	"auracore/internal/logging"
	"auracore/internal/manager"
	"auracore/internal/platform"
)

// coreConfig maps file configuration onto the runtime and session manager.
func (a *app) coreConfig(cfg config.Config) core.Config {
	return core.Config{
		ModelPath:     cfg.ModelPath,
		PoolSize:      cfg.PoolSizeBytes(),
		PoolBlockSize: cfg.PoolBlockBytes(),
		ProcfsRoot:    cfg.ProcfsRoot,
		SysfsRoot:     cfg.SysfsRoot,
		Manager: manager.ManagerConfig{
			Adapter:         a.opts.Adapter,
			Params:          manager.InferParams{ContextSize: cfg.ContextSize},
			Topology:        platform.TopologySource(cfg.SysfsRoot),
			Binder:          a.opts.Binder,
			DisablePinning:  !cfg.Pinning(),
			Threads:         cfg.Threads,
			MaxQueueDepth:   cfg.MaxQueueDepth,
			MaxWait:         cfg.MaxWait(),
			DrainTimeout:    cfg.DrainTimeout(),
			GenerateTimeout: cfg.GenerateTimeout(),
		},
	}
}

// newRuntime builds a logger and an uninitialized runtime from cfg.
func (a *app) newRuntime(cfg config.Config) (*core.Runtime, zerolog.Logger, error) {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, a.opts.Err)
	if err != nil {
		return nil, log, err
	}
	rt := core.New(a.coreConfig(cfg))
	rt.SetLogger(log)
	rt.Manager().SetEventPublisher(manager.NewLogPublisher(log.With().Str("component", "events").Logger()))
	return rt, log, nil
}
