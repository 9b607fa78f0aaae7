package storage

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"horizonx-probe/internal/core"
)

// readMounts lists /proc/mounts without pseudo filesystems and anything at
// or below /proc and /sys.
func (c *Collector) readMounts() ([]mount, bool) {
	lines := c.fs.ReadLines("/proc/mounts")
	if lines == nil {
		c.log.Warn("mount table unavailable", "path", "/proc/mounts")
		return nil, false
	}

	seen := make(map[string]bool)
	var out []mount
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		m := mount{
			Device: unescape(fields[0]),
			Point:  unescape(fields[1]),
			FSType: fields[2],
		}
		if !keepMount(m) || seen[m.Point] {
			continue
		}
		seen[m.Point] = true
		out = append(out, m)
	}
	return out, true
}

func keepMount(m mount) bool {
	if excludedFSTypes[m.FSType] {
		return false
	}
	for _, prefix := range []string{"/proc", "/sys"} {
		if m.Point == prefix || strings.HasPrefix(m.Point, prefix+"/") {
			return false
		}
	}
	return true
}

// unescape decodes the octal escapes (\040 for space) used in /proc/mounts.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// getFilesystems queries every kept mount, skipping failures and anything
// under 1 MiB, and sorts by descending usage.
func (c *Collector) getFilesystems(ctx context.Context, mounts []mount) ([]filesystem, error) {
	var out []filesystem
	for _, m := range mounts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		u, err := c.usage(ctx, c.fs.Path(m.Point))
		if err != nil {
			c.log.Debug("skipping mount", "mount", m.Point, "error", err)
			continue
		}
		if u.Total < minMountBytes {
			continue
		}
		out = append(out, filesystem{
			mount:   m,
			Usage:   u,
			Percent: core.UsagePercent(float64(u.Used), float64(u.Total)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent > out[j].Percent
		}
		return out[i].Point < out[j].Point
	})
	return out, nil
}
