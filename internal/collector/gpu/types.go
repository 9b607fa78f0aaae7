package gpu

import (
	"regexp"

	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "graphics"
	Title = "GRAPHICS INFORMATION"

	drmDir = "/sys/class/drm"
)

var cardPattern = regexp.MustCompile(`^card\d+$`)

type Collector struct {
	fs  sysfs.FS
	log logger.Logger
}

type card struct {
	Name     string
	VendorID string
	Vendor   string
	Driver   string
	Device   string
	Model    string
	VRAM     uint64
}
