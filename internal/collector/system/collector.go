// Package system reports host identity, distribution, uptime and load.
package system

import (
	"context"
	"fmt"
	"time"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

func NewCollector(fs sysfs.FS, log logger.Logger) *Collector {
	return &Collector{fs: fs, log: log, now: time.Now}
}

func (c *Collector) Key() string   { return Key }
func (c *Collector) Title() string { return Title }

func (c *Collector) Collect(ctx context.Context, v core.Verbosity) (*core.Category, error) {
	cat := core.NewCategory(Key, Title)

	id := c.getIdentity()
	cat.Info("Hostname", core.Text(id.Hostname))
	cat.Info("Kernel Name", core.Text(id.KernelName))
	cat.Info("Kernel Release", core.Text(id.KernelRelease))
	cat.Info("Kernel Version", core.Text(id.KernelVersion))
	cat.Info("Architecture", core.Text(id.Architecture))

	if d, ok := c.getDistribution(); ok {
		cat.Info("Distribution", core.Text(d.Name))
		cat.Info("Distribution ID", core.Text(d.ID))
		cat.Info("Distribution Version", core.Text(d.Version))
	}

	if up, ok := c.getUptime(); ok {
		cat.Info("Uptime", core.Text(core.FormatUptime(up)))
	}

	if v.AtLeast(core.Detailed) {
		if load, ok := c.getLoadAverage(); ok {
			cat.Info("Load Average", core.Text(load))
		}
	}

	if v.AtLeast(core.Full) {
		if cmdline, ok := c.fs.ReadString("/proc/cmdline"); ok {
			cat.Info("Kernel Parameters", core.Text(core.Clip(cmdline, cmdlineLimit)))
		}
		if mods := c.fs.ReadLines("/proc/modules"); mods != nil {
			cat.Info("Loaded Modules", core.Int(int64(len(mods))))
		}

		counts := c.countProcesses()
		sev := core.SeverityInfo
		if counts.Zombie > 0 {
			sev = core.SeverityWarn
		}
		cat.Set("Processes (Run/Sleep/Zombie)", core.Text(fmt.Sprintf("%d / %d / %d", counts.Running, counts.Sleeping, counts.Zombie)), sev)
		cat.Set("Zombie Processes", core.Int(int64(counts.Zombie)), sev)

		if boot, ok := c.getBootTime(); ok {
			cat.Info("Boot Time", core.Text(boot.Format("2006-01-02 15:04:05")))
		}
	}

	return cat, nil
}
