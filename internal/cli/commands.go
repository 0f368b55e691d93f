package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"auracore/internal/affinity"
	"auracore/internal/core"
	"auracore/internal/logging"
	"auracore/internal/manager"
	"auracore/internal/platform"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the runtime version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), core.Version)
			return err
		},
	}
}

// withBoundary initializes a runtime for a one-shot command and shuts it
// down afterwards.
func (a *app) withBoundary(fn func(*core.Boundary) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	rt, _, err := a.newRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Shutdown()
	b := core.NewBoundary(rt)
	if !b.InitializeAICore() {
		return errors.New("ai core initialization failed")
	}
	return fn(b)
}

func (a *app) requestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "request <text>...",
		Short:   "Route a request and print the JSON result",
		Example: "  auracore request report consciousness status",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return a.withBoundary(func(b *core.Boundary) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), b.ProcessRequest(&text))
				return err
			})
		},
	}
}

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "generate <prompt>...",
		Short:   "Generate a local response for a prompt",
		Example: "  auracore generate --model-path ~/models/bitnet.gguf Summarise my day",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			return a.withBoundary(func(b *core.Boundary) error {
				out := b.GenerateLocalResponse(&prompt)
				if code, failed := strings.CutPrefix(out, core.GenerateErrorPrefix); failed {
					return fmt.Errorf("generate failed: %s", code)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			})
		},
	}
}

func (a *app) analyzeBootCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "analyze-boot <image|->",
		Short:   "Analyze a boot image file (or stdin) and print the JSON result",
		Example: "  auracore analyze-boot boot.img",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return a.withBoundary(func(b *core.Boundary) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), b.AnalyzeBootImage(data))
				return err
			})
		},
	}
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

func (a *app) metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print a system metrics snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBoundary(func(b *core.Boundary) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), b.GetSystemMetrics())
				return err
			})
		},
	}
}

func (a *app) topologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topology",
		Short: "Show CPU cores and the performance core selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			src := platform.TopologySource(cfg.SysfsRoot)
			if st, ok := src.(*platform.SysfsTopology); ok {
				log, err := logging.New(cfg.LogLevel, cfg.LogFormat, a.opts.Err)
				if err != nil {
					return err
				}
				st.SetLogger(log)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if t, err := src.Topology(); err == nil {
				fmt.Fprintln(w, "CPU\tTIER")
				for _, c := range t.Cores {
					fmt.Fprintf(w, "%d\t%d\n", c.ID, c.Tier)
				}
			}
			plan := affinity.NewPlanner(src).Plan()
			fmt.Fprintf(w, "\nmask:\t%s\nsource:\t%s\n", plan.Mask, plan.Source)
			if plan.Warning != nil {
				fmt.Fprintf(w, "warning:\t%v\n", plan.Warning)
			}
			return w.Flush()
		},
	}
}

// doctorReport flattens the sanity report and adds trial load results.
type doctorReport struct {
	manager.SanityReport
	Events    []string `json:"events,omitempty"`
	LoadError string   `json:"load_error,omitempty"`
}

func (a *app) doctorCmd() *cobra.Command {
	var load bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the model, inference runtime and CPU pinning support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			rt, _, err := a.newRuntime(cfg)
			if err != nil {
				return err
			}
			defer rt.Shutdown()
			rep := doctorReport{SanityReport: rt.Manager().SanityCheck(cfg.ModelPath)}
			if load && rep.ModelFound {
				pub := manager.NewMemoryPublisher()
				rt.Manager().SetEventPublisher(pub)
				if _, err := rt.Manager().GetOrCreate(cmd.Context(), cfg.ModelPath); err != nil {
					rep.LoadError = err.Error()
				}
				rep.Events = pub.Names()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return err
			}
			switch {
			case !rep.ModelFound:
				return errors.New("model not found")
			case rep.LoadError != "":
				return errors.New("trial load failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&load, "load", false, "Also load the model once and report session events")
	return cmd
}
