package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"auracore/internal/config"
	"auracore/internal/httpapi"
)

const shutdownGrace = 5 * time.Second

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Initialize the AI core and serve the HTTP API",
		Example: "  auracore serve --addr :8080 --model-path ~/models/bitnet",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Addr, err)
			}
			return a.serve(ctx, cfg, ln)
		},
	}
	cmd.Flags().String("addr", config.Defaults().Addr, "HTTP listen address, e.g. :8080")
	cmd.Flags().Int64("max-body-bytes", config.Defaults().MaxBodyBytes, "Maximum request body size")
	cmd.Flags().Bool("cors-enabled", false, "Enable CORS")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated)")
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

// serve runs the HTTP API on ln until ctx is canceled, then drains the
// server and shuts the runtime down.
func (a *app) serve(ctx context.Context, cfg config.Config, ln net.Listener) error {
	rt, log, err := a.newRuntime(cfg)
	if err != nil {
		_ = ln.Close()
		return err
	}
	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)

	if !rt.Initialize() {
		_ = ln.Close()
		return errors.New("ai core initialization failed")
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)
	defer httpapi.SetBaseContext(nil)

	srv := &http.Server{
		Handler:           httpapi.NewMux(rt),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Str("model_path", cfg.ModelPath).Bool("pin_cores", cfg.Pinning()).Msg("auracore listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		err := srv.Shutdown(sctx)
		if err != nil {
			log.Warn().Err(err).Msg("graceful shutdown error")
			// Cancel in-flight generate calls still holding connections.
			cancelBase()
		}
		rt.Shutdown()
		return nil
	})
	return g.Wait()
}
