package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"horizonx-probe/internal/collector"
	"horizonx-probe/internal/config"
	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
)

// collectFlags are shared by every command that samples the system.
type collectFlags struct {
	verbose        int
	runLevel       string
	root           string
	sampleInterval time.Duration
}

func (f *collectFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.CountVarP(&f.verbose, "verbose", "v", "Verbosity: -v basic, -vv detailed, -vvv full")
	fl.StringVar(&f.runLevel, "run-level", "", "Run level: light, balanced or deep (overrides -v)")
	fl.StringVar(&f.root, "root", "", "Filesystem root holding proc/ and sys/ (default /)")
	fl.DurationVar(&f.sampleInterval, "sample-interval", 0, "Delay between the two CPU usage samples")
}

// apply layers explicitly set flags over cfg.
func (f *collectFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("root") {
		cfg.Root = f.root
	}
	if fl.Changed("sample-interval") {
		cfg.SampleInterval = f.sampleInterval
	}
	if fl.Changed("run-level") {
		cfg.RunLevel = f.runLevel
	}
}

// verbosity resolves --run-level, then -v, then the configured run level.
func (f *collectFlags) verbosity(cmd *cobra.Command, cfg *config.Config) (core.Verbosity, error) {
	if !cmd.Flags().Changed("run-level") && f.verbose > 0 {
		return core.VerbosityFromCount(f.verbose), nil
	}
	return core.ParseRunLevel(cfg.RunLevel)
}

func loadConfig(cmd *cobra.Command, f *collectFlags, extra func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	f.apply(cmd, cfg)
	if extra != nil {
		extra(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	return logger.NewWithWriter(cfg, cmd.ErrOrStderr())
}

func collectorOptions(cfg *config.Config) collector.Options {
	return collector.Options{
		Root:        cfg.Root,
		SampleDelay: cfg.SampleInterval,
		WtmpPath:    cfg.WtmpPath,
	}
}

// terminal reports whether w is a terminal and its width when known.
func terminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok {
		return false, 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false, 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return true, 0
	}
	return true, width
}
