package system

import "horizonx-probe/internal/sysfs"

const unknown = "Unknown"

// getDistribution reads /etc/os-release. A missing file leaves the
// distribution metrics out entirely.
func (c *Collector) getDistribution() (distribution, bool) {
	lines := c.fs.ReadLines("/etc/os-release")
	if lines == nil {
		c.log.Debug("os-release unavailable", "path", "/etc/os-release")
		return distribution{}, false
	}

	kv := sysfs.ParseKeyValue(lines)
	d := distribution{
		Name:    kv["PRETTY_NAME"],
		ID:      kv["ID"],
		Version: kv["VERSION_ID"],
	}
	if d.Name == "" {
		d.Name = kv["NAME"]
	}
	if d.Name == "" {
		d.Name = unknown
	}
	if d.ID == "" {
		d.ID = unknown
	}
	if d.Version == "" {
		d.Version = unknown
	}
	return d, true
}
