package cpu

import (
	"fmt"
	"strconv"
)

// getCoreFrequencies reads scaling_cur_freq (kHz) for the first limit cores.
func (c *Collector) getCoreFrequencies(limit int) []string {
	var out []string
	for i := 0; i < limit; i++ {
		path := "/sys/devices/system/cpu/cpu" + strconv.Itoa(i) + "/cpufreq/scaling_cur_freq"
		khz, ok := c.fs.ReadUint(path)
		if !ok {
			if i == 0 {
				c.log.Debug("cpufreq unavailable", "path", path)
			}
			break
		}
		out = append(out, fmt.Sprintf("cpu%d: %d MHz", i, khz/1000))
	}
	return out
}
