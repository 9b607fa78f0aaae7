// Package cpu reports processor identity, per-core usage and temperature.
package cpu

import (
	"context"
	"fmt"
	"time"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

func NewCollector(fs sysfs.FS, log logger.Logger, delay time.Duration) *Collector {
	if delay <= 0 {
		delay = DefaultSampleDelay
	}
	return &Collector{fs: fs, log: log, delay: delay, sleep: sleepCtx}
}

func (c *Collector) Key() string   { return Key }
func (c *Collector) Title() string { return Title }

func (c *Collector) Collect(ctx context.Context, v core.Verbosity) (*core.Category, error) {
	cat := core.NewCategory(Key, Title)

	spec, ok := c.getSpec()
	if !ok {
		cat.Set("Status", core.Text("CPU information not available"), core.SeverityCritical)
		return cat, nil
	}

	physical := len(spec.PhysicalIDs)
	if physical == 0 {
		physical = 1
	}
	cores := len(spec.CoreIDs)
	if cores == 0 {
		cores = spec.Processors
	}

	cat.Info("Model", core.Text(spec.Model))
	cat.Info("Vendor", core.Text(spec.Vendor))
	cat.Info("Logical Processors", core.Int(int64(spec.Processors)))
	cat.Info("Physical CPUs", core.Int(int64(physical)))
	cat.Info("Cores per CPU", core.Int(int64(cores)))

	if !v.AtLeast(core.Detailed) {
		return cat, nil
	}

	freq := "N/A"
	if spec.MHz != "" {
		freq = spec.MHz + " MHz"
	}
	cat.Info("Current Frequency", core.Text(freq))
	cat.Info("Cache Size", core.Text(orNA(spec.CacheSize)))
	cat.Info("BogoMIPS", core.Text(orNA(spec.BogoMIPS)))

	total, perCore, err := c.getUsage(ctx)
	if err != nil {
		return nil, err
	}
	if total != nil {
		cat.Set("CPU Usage", core.Percent(*total), core.Threshold(*total, 60, 80))
	}
	limit := len(perCore)
	if !v.AtLeast(core.Full) && limit > detailedCoreLimit {
		limit = detailedCoreLimit
	}
	for i, usage := range perCore[:limit] {
		cat.Set(fmt.Sprintf("Core %d Usage", i), core.Percent(usage), core.Threshold(usage, 60, 80))
	}

	if !v.AtLeast(core.Full) {
		return cat, nil
	}

	if freqs := c.getCoreFrequencies(freqCoreLimit); len(freqs) > 0 {
		cat.Info("Core Frequencies", core.List(freqs))
	}
	if features := spec.notable(); len(features) > 0 {
		cat.Info("Notable Features", core.List(features))
	}

	counters := c.getCounters()
	if n, ok := counters["ctxt"]; ok {
		cat.Info("Context Switches", core.Measured(core.FormatCount(n), float64(n)))
	}
	if n, ok := counters["intr"]; ok {
		cat.Info("Interrupts", core.Measured(core.FormatCount(n), float64(n)))
	}

	if temp, ok := c.getTemperature(); ok {
		cat.Set("Temperature", core.Measured(fmt.Sprintf("%.1f°C", temp), temp), core.Threshold(temp, 70, 80))
	} else {
		cat.Info("Temperature", core.Text("N/A"))
	}

	return cat, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
