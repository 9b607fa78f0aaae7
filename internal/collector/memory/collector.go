// Package memory reports RAM, swap and kernel memory accounting.
package memory

import (
	"context"
	"fmt"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

func NewCollector(fs sysfs.FS, log logger.Logger) *Collector {
	return &Collector{fs: fs, log: log}
}

func (c *Collector) Key() string   { return Key }
func (c *Collector) Title() string { return Title }

func (c *Collector) Collect(ctx context.Context, v core.Verbosity) (*core.Category, error) {
	cat := core.NewCategory(Key, Title)

	info, ok := c.readMemInfo()
	if !ok {
		cat.Set("Status", core.Text("Memory information not available"), core.SeverityCritical)
		return cat, nil
	}

	u := computeUsage(info)
	sev := core.Threshold(u.Percent, 80, 90)

	cat.Info("Total Memory", core.Bytes(u.Total))
	cat.Info("Available Memory", core.Bytes(u.Available))
	cat.Set("Used Memory", core.Bytes(u.Used), sev)
	cat.Set("Usage Percentage", core.Percent(u.Percent), sev)

	if v.AtLeast(core.Detailed) {
		if swapTotal := info.get("SwapTotal"); swapTotal > 0 {
			swapFree := min(info.get("SwapFree"), swapTotal)
			swapUsed := swapTotal - swapFree
			pct := core.UsagePercent(float64(swapUsed), float64(swapTotal))
			swapSev := core.Threshold(pct, 50, 80)

			cat.Info("Swap Total", core.Bytes(swapTotal))
			cat.Set("Swap Used", core.Bytes(swapUsed), swapSev)
			cat.Info("Swap Free", core.Bytes(swapFree))
			cat.Set("Swap Usage", core.Percent(pct), swapSev)
		}
		cat.Info("Buffers", core.Bytes(info.get("Buffers")))
		cat.Info("Cached", core.Bytes(info.get("Cached")))
	}

	if v.AtLeast(core.Full) {
		cat.Info("Active Memory", core.Bytes(info.get("Active")))
		cat.Info("Inactive Memory", core.Bytes(info.get("Inactive")))
		cat.Info("Dirty Pages", core.Bytes(info.get("Dirty")))
		cat.Info("Writeback", core.Bytes(info.get("Writeback")))
		cat.Info("Slab", core.Bytes(info.get("Slab")))
		if total := info.get("HugePages_Total"); total > 0 {
			cat.Info("HugePages (Total/Free)", core.Text(fmt.Sprintf("%d / %d", total, info.get("HugePages_Free"))))
		}
	}

	return cat, nil
}
