package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"horizonx-probe/internal/collector"
	"horizonx-probe/internal/config"
	"horizonx-probe/internal/export"
	"horizonx-probe/internal/render"
)

type snapshotOptions struct {
	collectFlags

	exportFormat string
	exportPath   string
	noColor      bool
	maxWidth     int
}

func (o *snapshotOptions) bind(cmd *cobra.Command) {
	o.collectFlags.bind(cmd)

	fl := cmd.Flags()
	fl.StringVar(&o.exportFormat, "export-format", "", "Also write the snapshot as json, csv or log")
	fl.StringVar(&o.exportPath, "path", "", "Directory for exported files (default .)")
	fl.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fl.IntVar(&o.maxWidth, "max-width", 0, "Maximum table column width (0 disables truncation)")
}

func (o *snapshotOptions) applyOutput(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		fl := cmd.Flags()
		if fl.Changed("export-format") {
			cfg.ExportFormat = o.exportFormat
		}
		if fl.Changed("path") {
			cfg.ExportPath = o.exportPath
		}
		if fl.Changed("no-color") {
			cfg.NoColor = o.noColor
		}
		if fl.Changed("max-width") {
			cfg.MaxWidth = o.maxWidth
		}
	}
}

func newSnapshotCmd() *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Collect and print one system snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runSnapshot(cmd *cobra.Command, opts *snapshotOptions) error {
	cfg, err := loadConfig(cmd, &opts.collectFlags, opts.applyOutput(cmd))
	if err != nil {
		return err
	}
	v, err := opts.verbosity(cmd, cfg)
	if err != nil {
		return err
	}

	log := newLogger(cmd, cfg)
	out := cmd.OutOrStdout()
	isTerm, width := terminal(out)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sampler := collector.NewSampler(collectorOptions(cfg), log)

	start := time.Now()
	snap, err := sampler.Collect(ctx, v)
	elapsed := time.Since(start)

	r := render.New(out, render.Options{
		Color:          isTerm && !cfg.NoColor,
		MaxColumnWidth: cfg.MaxWidth,
		Width:          width,
		Version:        version,
		Elapsed:        elapsed,
	})

	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.Interrupted()
			return reportedError{ErrInterrupted}
		}
		r.Error(err.Error())
		return reportedError{err}
	}

	if err := r.Snapshot(snap); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Debug("snapshot collected", "id", snap.ID(), "elapsed", elapsed)

	if cfg.ExportFormat == "" {
		return nil
	}
	format, err := export.ParseFormat(strings.ToLower(cfg.ExportFormat))
	if err != nil {
		return err
	}
	path, err := export.Write(snap, format, cfg.ExportPath, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Snapshot exported to %s\n", path)
	return nil
}
