// Package cli implements the auracore command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"auracore/internal/affinity"
	"auracore/internal/config"
	"auracore/internal/manager"
)

// EnvPrefix prefixes environment overrides, e.g. AURACORE_MODEL_PATH.
const EnvPrefix = "AURACORE"

// Options carries process wiring that is not configuration. Zero values
// select stdout/stderr and the platform adapter and binder.
type Options struct {
	Out     io.Writer
	Err     io.Writer
	Adapter manager.InferenceAdapter
	Binder  affinity.Binder
}

type app struct {
	opts    Options
	v       *viper.Viper
	cfgPath string
}

// NewRootCmd builds the auracore command tree.
func NewRootCmd(opts Options) *cobra.Command {
	a := newApp(opts)

	root := &cobra.Command{
		Use:           "auracore",
		Short:         "On-device AI core: request routing, local generation and boot image checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.opts.Out)
	root.SetErr(a.opts.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "Path to a YAML, JSON or TOML config file")
	d := config.Defaults()
	pf.String("model-path", "", "Model file, or a directory holding *.gguf models")
	pf.Int("memory-pool-mb", d.MemoryPoolMB, "Working memory pool size in MiB")
	pf.Int("pool-block-kb", d.PoolBlockKB, "Memory pool block size in KiB")
	pf.Int("context-size", d.ContextSize, "Model context size in tokens")
	pf.Int("threads", 0, "Inference threads (0 sizes to the affinity mask)")
	pf.Bool("pin-cores", true, "Pin the inference worker to performance cores")
	pf.String("sysfs-root", d.SysfsRoot, "sysfs mount point")
	pf.String("procfs-root", d.ProcfsRoot, "procfs mount point")
	pf.Int("generate-timeout-ms", d.GenerateTimeoutMS, "Default generate deadline in milliseconds")
	pf.Int("max-queue-depth", d.MaxQueueDepth, "Maximum queued generate calls")
	pf.Int("max-wait-ms", d.MaxWaitMS, "Maximum queue wait in milliseconds")
	pf.Int("drain-timeout-ms", d.DrainTimeoutMS, "Shutdown drain warning threshold in milliseconds")
	pf.String("log-level", d.LogLevel, "Log level: off|error|warn|info|debug")
	pf.String("log-format", d.LogFormat, "Log format: console|json")
	if err := bindFlags(a.v, pf); err != nil {
		// Flag names are fixed above; a failure here is a programming error.
		panic(err)
	}

	root.AddCommand(
		a.serveCmd(),
		a.versionCmd(),
		a.requestCmd(),
		a.generateCmd(),
		a.analyzeBootCmd(),
		a.metricsCmd(),
		a.topologyCmd(),
		a.doctorCmd(),
	)
	return root
}

func newApp(opts Options) *app {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &app{opts: opts, v: v}
}

// Execute runs the command tree against os.Args.
func Execute(opts Options) error {
	return NewRootCmd(opts).Execute()
}

// bindFlags binds every flag to the viper key of the same name with dashes
// replaced by underscores, matching the config file keys.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return err
}

// loadConfig reads --config (if any), overlays flags and environment, and
// validates the result.
func (a *app) loadConfig() (config.Config, error) {
	cfg := config.Defaults()
	if a.cfgPath != "" {
		var err error
		if cfg, err = config.Load(a.cfgPath); err != nil {
			return cfg, err
		}
	}
	cfg = config.ApplyOverrides(cfg, a.v).WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
