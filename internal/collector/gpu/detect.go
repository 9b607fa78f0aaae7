package gpu

import "path"

// detectCards lists card<N> entries backed by a device directory.
// Connector entries such as card0-HDMI-A-1 do not match.
func (c *Collector) detectCards() []string {
	var cards []string
	for _, name := range c.fs.ReadDir(drmDir) {
		if !cardPattern.MatchString(name) {
			continue
		}
		if !c.fs.IsDir(drmDir + "/" + name + "/device") {
			c.log.Debug("drm card without device", "card", name)
			continue
		}
		cards = append(cards, name)
	}
	return cards
}

func (c *Collector) readCard(name string, full bool) card {
	base := drmDir + "/" + name + "/device/"

	cd := card{Name: name, Vendor: "Unknown"}
	if id, ok := c.fs.ReadString(base + "vendor"); ok && id != "" {
		cd.VendorID = id
		cd.Vendor = vendorName(id)
	} else {
		c.log.Debug("failed to read gpu vendor", "path", base+"vendor")
	}

	if target, ok := c.fs.Readlink(base + "driver"); ok {
		cd.Driver = path.Base(target)
	}

	if full {
		cd.Device, _ = c.fs.ReadString(base + "device")
		cd.Model, _ = c.fs.ReadString(base + "product_name")
		if vram, ok := c.fs.ReadUint(base + "mem_info_vram_total"); ok {
			cd.VRAM = vram
		}
	}
	return cd
}
