// Package storage reports mounted filesystem usage, block devices and
// cumulative disk I/O.
package storage

import (
	"context"
	"fmt"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

func NewCollector(fs sysfs.FS, log logger.Logger, usage UsageFunc) *Collector {
	if usage == nil {
		usage = DiskUsage
	}
	return &Collector{fs: fs, log: log, usage: usage}
}

func (c *Collector) Key() string   { return Key }
func (c *Collector) Title() string { return Title }

func (c *Collector) Collect(ctx context.Context, v core.Verbosity) (*core.Category, error) {
	cat := core.NewCategory(Key, Title)

	if mounts, ok := c.readMounts(); ok {
		filesystems, err := c.getFilesystems(ctx, mounts)
		if err != nil {
			return nil, err
		}
		c.addFilesystems(cat, filesystems, v)
	}

	if devices, ok := c.detectBlockDevices(v); ok {
		c.addDevices(cat, devices, v)
	} else {
		cat.Set("Status", core.Text("Block device information not available"), core.SeverityWarn)
	}

	if v.AtLeast(core.Detailed) {
		limit := ioLimitDetailed
		if v.AtLeast(core.Full) {
			limit = ioLimitFull
		}
		stats := c.readIOStats()
		if len(stats) > limit {
			stats = stats[:limit]
		}
		for _, s := range stats {
			cat.Info(s.Device+" I/O (Read/Write)", core.Text(core.FormatUint(s.ReadBytes)+" / "+core.FormatUint(s.WrittenBytes)))
		}
	}

	return cat, nil
}

func (c *Collector) addFilesystems(cat *core.Category, filesystems []filesystem, v core.Verbosity) {
	cat.Info("Mounted Filesystems", core.Int(int64(len(filesystems))))
	if len(filesystems) == 0 {
		return
	}

	top := filesystems[0]
	cat.Set("Highest Usage", core.Measured(fmt.Sprintf("%s (%s)", top.Point, core.FormatPercent(top.Percent)), top.Percent), core.Threshold(top.Percent, 80, 90))

	shown := filesystems
	if !v.AtLeast(core.Detailed) && len(shown) > lightMountLimit {
		shown = shown[:lightMountLimit]
	}

	tbl := core.NewTable("Filesystems", "Mount", "Device", "Type", "Total", "Used", "Available", "Usage")
	for _, f := range shown {
		tbl.Append(core.Threshold(f.Percent, 80, 90),
			f.Point,
			f.Device,
			f.FSType,
			core.FormatUint(f.Total),
			core.FormatUint(f.Used),
			core.FormatUint(f.Available),
			core.FormatPercent(f.Percent),
		)
	}
	cat.AddTable(tbl)
}

func (c *Collector) addDevices(cat *core.Category, devices []blockDevice, v core.Verbosity) {
	cat.Info("Total Block Devices", core.Int(int64(len(devices))))

	labels := make([]string, 0, len(devices))
	for _, d := range devices {
		labels = append(labels, d.label())
	}
	if !v.AtLeast(core.Full) && len(labels) > deviceListLimit {
		rest := len(labels) - deviceListLimit
		labels = append(labels[:deviceListLimit:deviceListLimit], fmt.Sprintf("... (+%d more)", rest))
	}
	cat.Info("Devices", core.List(labels))
}
