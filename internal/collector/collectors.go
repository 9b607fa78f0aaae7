// Package collector assembles the ordered collector list for one run.
package collector

import (
	"time"

	"horizonx-probe/internal/collector/board"
	"horizonx-probe/internal/collector/cpu"
	"horizonx-probe/internal/collector/gpu"
	"horizonx-probe/internal/collector/memory"
	"horizonx-probe/internal/collector/process"
	"horizonx-probe/internal/collector/storage"
	"horizonx-probe/internal/collector/system"
	"horizonx-probe/internal/collector/users"
	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

type Options struct {
	Root        string
	SampleDelay time.Duration
	WtmpPath    string
	DiskUsage   storage.UsageFunc
}

// All returns every collector in report order.
func All(opts Options, log logger.Logger) []core.Collector {
	fs := sysfs.New(opts.Root)
	return []core.Collector{
		system.NewCollector(fs, log.With("collector", system.Key)),
		cpu.NewCollector(fs, log.With("collector", cpu.Key), opts.SampleDelay),
		memory.NewCollector(fs, log.With("collector", memory.Key)),
		board.NewCollector(fs, log.With("collector", board.Key)),
		storage.NewCollector(fs, log.With("collector", storage.Key), opts.DiskUsage),
		gpu.NewCollector(fs, log.With("collector", gpu.Key)),
		process.NewCollector(fs, log.With("collector", process.Key)),
		users.NewCollector(fs, log.With("collector", users.Key), opts.WtmpPath),
	}
}

func NewSampler(opts Options, log logger.Logger) *core.Sampler {
	return core.NewSampler(log, All(opts, log)...)
}
