package cpu

import (
	"context"
	"strconv"
	"strings"
)

// getUsage samples /proc/stat twice, delay apart. total is nil when the
// aggregate line is missing from either sample.
func (c *Collector) getUsage(ctx context.Context) (*float64, []float64, error) {
	before, ok := c.readStat()
	if !ok {
		return nil, nil, nil
	}
	if err := c.sleep(ctx, c.delay); err != nil {
		return nil, nil, err
	}
	after, ok := c.readStat()
	if !ok {
		return nil, nil, nil
	}

	var total *float64
	if b, ok := before["cpu"]; ok {
		if a, ok := after["cpu"]; ok {
			u := usagePercent(b, a)
			total = &u
		}
	}

	var perCore []float64
	for i := 0; ; i++ {
		name := "cpu" + strconv.Itoa(i)
		b, ok1 := before[name]
		a, ok2 := after[name]
		if !ok1 || !ok2 {
			break
		}
		perCore = append(perCore, usagePercent(b, a))
	}
	return total, perCore, nil
}

func (c *Collector) readStat() (map[string]cpuStat, bool) {
	lines := c.fs.ReadLines("/proc/stat")
	if lines == nil {
		c.log.Debug("cpu counters unavailable", "path", "/proc/stat")
		return nil, false
	}

	stats := make(map[string]cpuStat)
	for _, line := range lines {
		if !strings.HasPrefix(line, "cpu") {
			continue
		}
		name, st, ok := parseCPUStat(line)
		if !ok {
			continue
		}
		stats[name] = st
	}
	return stats, true
}

func parseCPUStat(line string) (string, cpuStat, bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return "", cpuStat{}, false
	}

	var st cpuStat
	for i, val := range fields[1:] {
		v, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return "", cpuStat{}, false
		}
		st.total += v
		if i == 3 {
			st.idle = v
		}
	}
	return fields[0], st, true
}

// usagePercent is the busy share of the ticks elapsed between two samples.
// No elapsed ticks means 0%.
func usagePercent(before, after cpuStat) float64 {
	if after.total <= before.total {
		return 0
	}
	dTotal := float64(after.total - before.total)
	var dIdle float64
	if after.idle > before.idle {
		dIdle = float64(after.idle - before.idle)
	}
	usage := (dTotal - dIdle) / dTotal * 100
	if usage < 0 {
		return 0
	}
	if usage > 100 {
		return 100
	}
	return usage
}

// getCounters returns the single-value lines of /proc/stat (ctxt, intr, ...).
func (c *Collector) getCounters() map[string]uint64 {
	out := make(map[string]uint64)
	for _, line := range c.fs.ReadLines("/proc/stat") {
		fields := strings.Fields(line)
		if len(fields) < 2 || strings.HasPrefix(fields[0], "cpu") {
			continue
		}
		if v, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
			out[fields[0]] = v
		}
	}
	return out
}
