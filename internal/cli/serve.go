package cli

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"horizonx-probe/internal/collector"
	"horizonx-probe/internal/config"
	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/metrics"
	transporthttp "horizonx-probe/internal/transport/http"
	"horizonx-probe/internal/transport/ws"
)

type serveOptions struct {
	collectFlags

	addr     string
	interval time.Duration
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshots over HTTP, websocket and Prometheus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &opts.collectFlags, func(cfg *config.Config) {
				if cmd.Flags().Changed("addr") {
					cfg.Address = opts.addr
				}
				if cmd.Flags().Changed("interval") {
					cfg.Interval = opts.interval
				}
			})
			if err != nil {
				return err
			}
			v, err := opts.verbosity(cmd, cfg)
			if err != nil {
				return err
			}

			log := newLogger(cmd, cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Address)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Address, err)
			}
			if cfg.JWTSecret == "" {
				log.Warn("JWT_SECRET is empty, /api and /ws are unauthenticated")
			}
			return serve(ctx, cfg, v, log, ln)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default :3000)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Websocket stream interval (default 5s)")
	return cmd
}

// serve runs the HTTP server, the websocket hub and the stream scheduler
// until ctx is done or one of them fails.
func serve(ctx context.Context, cfg *config.Config, v core.Verbosity, log logger.Logger, ln net.Listener) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	exporter := metrics.NewExporter(registry)

	sampler := collector.NewSampler(collectorOptions(cfg), log)

	g, ctx := errgroup.WithContext(ctx)

	hub := ws.NewHub(ctx, log)
	g.Go(func() error {
		hub.Run()
		return nil
	})

	scheduler := core.NewScheduler(cfg.Interval, v, log, sampler, func(snap *core.Snapshot) {
		exporter.Observe(snap, time.Since(snap.CollectedAt()))
		hub.Broadcast(snap)
	})
	g.Go(func() error {
		return scheduler.Start(ctx)
	})

	router := transporthttp.NewRouter(cfg, log, &transporthttp.RouterDeps{
		Snapshot: transporthttp.NewSnapshotHandler(sampler, v, exporter, log),
		Ws:       ws.NewHandler(hub, log),
		Metrics:  exporter.Handler(),
	})
	srv := transporthttp.NewServer(router, cfg.Address, log)
	g.Go(func() error {
		return srv.Serve(ctx, ln)
	})

	err := g.Wait()
	log.Info("server stopped")
	return err
}
