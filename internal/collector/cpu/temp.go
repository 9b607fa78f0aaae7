package cpu

import (
	"path"

	"horizonx-probe/pkg"
)

var hwmonTargets = []string{
	"coretemp",
	"k10temp",
	"zenpower*",
	"cpu_thermal",
}

// getTemperature prefers thermal zones and falls back to CPU hwmon
// sensors. Readings are millidegrees.
func (c *Collector) getTemperature() (float64, bool) {
	for _, f := range c.fs.Glob("/sys/class/thermal/thermal_zone*/temp") {
		if v, ok := c.fs.ReadFloat(f); ok && v > 0 {
			return v / 1e3, true
		}
	}

	for _, f := range c.fs.Glob("/sys/class/hwmon/hwmon*/temp*_input") {
		name, ok := c.fs.ReadString(path.Join(path.Dir(f), "name"))
		if !ok || !pkg.MatchAny(name, hwmonTargets...) {
			continue
		}
		if v, ok := c.fs.ReadFloat(f); ok && v > 0 {
			return v / 1e3, true
		}
	}

	c.log.Debug("no cpu temperature sensor found")
	return 0, false
}
