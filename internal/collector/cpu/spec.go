package cpu

import (
	"strings"

	"horizonx-probe/internal/sysfs"
)

// getSpec folds the repeated processor records of /proc/cpuinfo. The first
// value seen wins for scalar fields.
func (c *Collector) getSpec() (CPUSpec, bool) {
	lines := c.fs.ReadLines("/proc/cpuinfo")
	if lines == nil {
		c.log.Warn("cpuinfo unavailable", "path", "/proc/cpuinfo")
		return CPUSpec{}, false
	}
	return parseCPUInfo(lines), true
}

func parseCPUInfo(lines []string) CPUSpec {
	spec := CPUSpec{
		PhysicalIDs: make(map[string]struct{}),
		CoreIDs:     make(map[string]struct{}),
	}

	first := func(dst *string, value string) {
		if *dst == "" {
			*dst = value
		}
	}

	for _, line := range lines {
		key, value, ok := sysfs.ParseColonValue(line)
		if !ok {
			continue
		}

		switch key {
		case "processor":
			spec.Processors++
		case "model name":
			first(&spec.Model, value)
		case "vendor_id":
			first(&spec.Vendor, value)
		case "cpu MHz":
			first(&spec.MHz, value)
		case "cache size":
			first(&spec.CacheSize, value)
		case "bogomips":
			first(&spec.BogoMIPS, value)
		case "flags":
			if spec.Flags == nil {
				spec.Flags = strings.Fields(value)
			}
		case "physical id":
			spec.PhysicalIDs[value] = struct{}{}
		case "core id":
			spec.CoreIDs[value] = struct{}{}
		}
	}

	if spec.Model == "" {
		spec.Model = "Unknown"
	}
	if spec.Vendor == "" {
		spec.Vendor = "Unknown"
	}
	return spec
}

// notable returns the well-known feature flags present, in table order.
func (s CPUSpec) notable() []string {
	have := make(map[string]bool, len(s.Flags))
	for _, f := range s.Flags {
		have[f] = true
	}

	var out []string
	for _, f := range notableFeatures {
		if have[f] {
			out = append(out, f)
		}
		if len(out) == featureLimit {
			break
		}
	}
	return out
}
