package procfs

import (
	"strconv"
	"strings"
	"time"

	"github.com/tklauser/go-sysconf"

	"horizonx-probe/internal/sysfs"
)

const defaultClockTicks = 100

// ClockTicks returns SC_CLK_TCK, the unit of the stat time fields.
func ClockTicks() int64 {
	tck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || tck <= 0 {
		return defaultClockTicks
	}
	return tck
}

// Uptime returns the first field of /proc/uptime in seconds.
func Uptime(fs sysfs.FS) (float64, bool) {
	raw, ok := fs.ReadString("/proc/uptime")
	if !ok {
		return 0, false
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return secs, true
}

// BootTime reads btime from /proc/stat, falling back to now minus uptime.
func BootTime(fs sysfs.FS, now time.Time) (time.Time, bool) {
	for _, line := range fs.ReadLines("/proc/stat") {
		if !strings.HasPrefix(line, "btime ") {
			continue
		}
		secs, err := strconv.ParseInt(strings.TrimSpace(line[len("btime "):]), 10, 64)
		if err == nil && secs > 0 {
			return time.Unix(secs, 0), true
		}
		break
	}

	up, ok := Uptime(fs)
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(up * float64(time.Second))), true
}

// StartedAt converts a stat starttime (ticks since boot) to wall time.
func StartedAt(boot time.Time, startTicks uint64, hz int64) time.Time {
	if hz <= 0 {
		hz = defaultClockTicks
	}
	return boot.Add(time.Duration(float64(startTicks) / float64(hz) * float64(time.Second)))
}
