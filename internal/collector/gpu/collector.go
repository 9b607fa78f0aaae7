// Package gpu reports graphics adapters found under /sys/class/drm.
package gpu

import (
	"context"

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

	names := c.detectCards()
	cat.Info("Graphics Devices", core.Int(int64(len(names))))
	if len(names) == 0 {
		cat.Info("GPUs", core.Text("No discrete GPU detected"))
		return cat, nil
	}

	labels := make([]string, 0, len(names))
	for _, name := range names {
		cd := c.readCard(name, v.AtLeast(core.Full))

		label := cd.Vendor
		if v.AtLeast(core.Detailed) {
			driver := cd.Driver
			if driver == "" {
				driver = "no driver"
			}
			label += " (" + driver + ")"
		}
		labels = append(labels, label)

		if v.AtLeast(core.Full) {
			product := cd.Model
			if product == "" {
				product = cd.Device
			}
			if product != "" {
				cat.Info(cd.Name+" Device", core.Text(product))
			}
			if cd.VRAM > 0 {
				cat.Info(cd.Name+" VRAM", core.Bytes(cd.VRAM))
			}
		}
	}
	cat.Info("GPUs", core.List(labels))

	return cat, nil
}
