package memory

import (
	"strconv"
	"strings"
)

func (c *Collector) readMemInfo() (memInfo, bool) {
	lines := c.fs.ReadLines("/proc/meminfo")
	if lines == nil {
		c.log.Warn("meminfo unavailable", "path", "/proc/meminfo")
		return nil, false
	}
	return parseMemInfo(lines, c.log.Debug), true
}

// parseMemInfo converts "Key: value kB" lines to bytes. Unit-less values
// (HugePages_Total and friends) are kept as counts; non-numeric lines are
// skipped.
func parseMemInfo(lines []string, debug func(string, ...any)) memInfo {
	info := make(memInfo)
	for _, line := range lines {
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			debug("skipping meminfo line", "line", line, "error", err)
			continue
		}
		if len(fields) > 1 && strings.EqualFold(fields[1], "kB") {
			v *= 1024
		}
		info[strings.TrimSpace(key)] = v
	}
	return info
}

// computeUsage derives used = total - available, falling back to MemFree
// when MemAvailable is absent.
func computeUsage(info memInfo) usage {
	u := usage{Total: info.get("MemTotal")}

	avail, ok := info["MemAvailable"]
	if !ok {
		avail = info.get("MemFree")
	}
	if avail > u.Total {
		avail = u.Total
	}
	u.Available = avail
	u.Used = u.Total - avail

	if u.Total > 0 {
		u.Percent = float64(u.Used) / float64(u.Total) * 100
		if u.Percent > 100 {
			u.Percent = 100
		}
	}
	return u
}
