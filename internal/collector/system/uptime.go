package system

import (
	"fmt"
	"strings"
	"time"

	"horizonx-probe/internal/procfs"
)

func (c *Collector) getUptime() (float64, bool) {
	up, ok := procfs.Uptime(c.fs)
	if !ok {
		c.log.Debug("uptime unavailable", "path", "/proc/uptime")
	}
	return up, ok
}

func (c *Collector) getBootTime() (time.Time, bool) {
	return procfs.BootTime(c.fs, c.now())
}

func (c *Collector) getLoadAverage() (string, bool) {
	raw, ok := c.fs.ReadString("/proc/loadavg")
	if !ok {
		c.log.Debug("load average unavailable", "path", "/proc/loadavg")
		return "", false
	}
	f := strings.Fields(raw)
	if len(f) < 3 {
		return "", false
	}
	return fmt.Sprintf("%s (1min) / %s (5min) / %s (15min)", f[0], f[1], f[2]), true
}

func (c *Collector) countProcesses() processCounts {
	var counts processCounts
	for _, pid := range procfs.ListPIDs(c.fs) {
		raw, ok := c.fs.ReadString(fmt.Sprintf("/proc/%d/stat", pid))
		if !ok {
			continue
		}
		st, err := procfs.ParseStat(raw)
		if err != nil {
			c.log.Debug("skipping process", "pid", pid, "error", err)
			continue
		}
		switch st.State {
		case 'R':
			counts.Running++
		case 'S':
			counts.Sleeping++
		case 'Z':
			counts.Zombie++
		}
	}
	return counts
}
