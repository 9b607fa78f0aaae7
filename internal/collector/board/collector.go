// Package board reports motherboard, system and BIOS identity from DMI.
package board

import (
	"context"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "motherboard"
	Title = "MOTHERBOARD INFORMATION"

	dmiDir = "/sys/class/dmi/id"
)

type field struct {
	name     string
	file     string
	fallback string
}

var (
	basicFields = []field{
		{"Board Vendor", "board_vendor", "Unknown"},
		{"Board Name", "board_name", "Unknown"},
		{"Board Version", "board_version", "Unknown"},
	}
	detailedFields = []field{
		{"System Vendor", "sys_vendor", "Unknown"},
		{"System Product", "product_name", "Unknown"},
		{"System Version", "product_version", "Unknown"},
		{"BIOS Vendor", "bios_vendor", "Unknown"},
		{"BIOS Version", "bios_version", "Unknown"},
		{"BIOS Date", "bios_date", "Unknown"},
	}
	fullFields = []field{
		{"Chassis Vendor", "chassis_vendor", "N/A"},
		{"Chassis Type", "chassis_type", "N/A"},
		{"Chassis Serial", "chassis_serial", "N/A"},
		{"Product Serial", "product_serial", ""},
		{"Product UUID", "product_uuid", ""},
	}
)

// SMBIOS chassis type codes.
var chassisTypes = map[string]string{
	"1": "Other", "2": "Unknown", "3": "Desktop", "4": "Low Profile Desktop",
	"6": "Mini Tower", "7": "Tower", "8": "Portable", "9": "Laptop",
	"10": "Notebook", "11": "Hand Held", "13": "All in One", "14": "Sub Notebook",
	"17": "Main Server Chassis", "23": "Rack Mount Chassis", "30": "Tablet",
	"31": "Convertible", "32": "Detachable", "35": "Mini PC", "36": "Stick PC",
}

type Collector struct {
	fs  sysfs.FS
	log logger.Logger
}

func NewCollector(fs sysfs.FS, log logger.Logger) *Collector {
	return &Collector{fs: fs, log: log}
}

func (c *Collector) Key() string   { return Key }
func (c *Collector) Title() string { return Title }

func (c *Collector) Collect(ctx context.Context, v core.Verbosity) (*core.Category, error) {
	cat := core.NewCategory(Key, Title)

	if !c.fs.IsDir(dmiDir) {
		c.log.Warn("dmi unavailable", "path", dmiDir)
		cat.Set("Status", core.Text("DMI information not available"), core.SeverityWarn)
		return cat, nil
	}

	c.addFields(cat, basicFields)
	if v.AtLeast(core.Detailed) {
		c.addFields(cat, detailedFields)
	}
	if v.AtLeast(core.Full) {
		c.addFields(cat, fullFields)
	}
	return cat, nil
}

func (c *Collector) addFields(cat *core.Category, fields []field) {
	for _, f := range fields {
		value, ok := c.fs.ReadString(dmiDir + "/" + f.file)
		if !ok || value == "" {
			if f.fallback == "" {
				continue
			}
			value = f.fallback
		} else if f.file == "chassis_type" {
			if name, ok := chassisTypes[value]; ok {
				value = name
			}
		}
		cat.Info(f.name, core.Text(value))
	}
}
