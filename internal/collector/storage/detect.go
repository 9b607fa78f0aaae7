package storage

import (
	"fmt"
	"regexp"
	"strings"

	"horizonx-probe/internal/core"
	"horizonx-probe/pkg"
)

var (
	nvmePartition = regexp.MustCompile(`^nvme\d+n\d+p\d+$`)
	sdPartition   = regexp.MustCompile(`^(sd|vd|hd|xvd)[a-z]+\d+$`)
	mmcPartition  = regexp.MustCompile(`^mmcblk\d+p\d+$`)

	virtualDevices = []string{"loop*", "ram*"}
)

// isPartition reports whether name looks like a partition rather than a
// whole disk: either a known partition pattern or a trailing digit preceded
// by another digit.
func isPartition(name string) bool {
	if nvmePartition.MatchString(name) ||
		sdPartition.MatchString(name) ||
		mmcPartition.MatchString(name) {
		return true
	}
	n := len(name)
	return n > 3 && isDigit(name[n-1]) && isDigit(name[n-2])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isVirtual(name string) bool {
	return pkg.MatchAny(name, virtualDevices...)
}

// detectBlockDevices lists /sys/block. ok is false when the directory is
// missing.
func (c *Collector) detectBlockDevices(v core.Verbosity) ([]blockDevice, bool) {
	if !c.fs.IsDir("/sys/block") {
		c.log.Warn("block devices unavailable", "path", "/sys/block")
		return nil, false
	}

	var out []blockDevice
	for _, name := range c.fs.ReadDir("/sys/block") {
		if isVirtual(name) && !v.AtLeast(core.Full) {
			continue
		}
		base := "/sys/block/" + name

		dev := blockDevice{Name: name, Type: "Unknown"}
		if sectors, ok := c.fs.ReadUint(base + "/size"); ok {
			dev.Size = sectors * sectorSize
		}
		if rot, ok := c.fs.ReadString(base + "/queue/rotational"); ok {
			switch rot {
			case "0":
				dev.Type = "SSD"
			case "1":
				dev.Type = "HDD"
			}
		}
		if v.AtLeast(core.Detailed) {
			dev.Model, _ = c.fs.ReadString(base + "/device/model")
			dev.Vendor, _ = c.fs.ReadString(base + "/device/vendor")
		}
		out = append(out, dev)
	}
	return out, true
}

func (d blockDevice) label() string {
	s := fmt.Sprintf("%s (%s) - %s", d.Name, d.Type, core.FormatUint(d.Size))
	if ident := strings.TrimSpace(d.Vendor + " " + d.Model); ident != "" {
		s += " [" + ident + "]"
	}
	return s
}
