package storage

import (
	"sort"
	"strconv"
	"strings"
)

// readIOStats returns cumulative read/write bytes per whole disk from
// /proc/diskstats. Partitions and idle devices are left out.
func (c *Collector) readIOStats() []ioStat {
	lines := c.fs.ReadLines("/proc/diskstats")
	if lines == nil {
		c.log.Debug("diskstats unavailable", "path", "/proc/diskstats")
		return nil
	}

	var out []ioStat
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 14 {
			continue
		}
		dev := fields[2]
		if isPartition(dev) {
			continue
		}
		read, err1 := strconv.ParseUint(fields[5], 10, 64)
		written, err2 := strconv.ParseUint(fields[9], 10, 64)
		if err1 != nil || err2 != nil {
			c.log.Debug("skipping diskstats line", "device", dev)
			continue
		}
		if read == 0 && written == 0 {
			continue
		}
		out = append(out, ioStat{
			Device:       dev,
			ReadBytes:    read * sectorSize,
			WrittenBytes: written * sectorSize,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Device < out[j].Device })
	return out
}
