package gpu

import "strings"

var vendors = map[string]string{
	"0x8086": "Intel",
	"0x10de": "NVIDIA",
	"0x1002": "AMD",
	"0x1af4": "Virtio",
	"0x1234": "QEMU",
}

// vendorName maps a PCI vendor id; unknown ids pass through unchanged.
func vendorName(id string) string {
	if name, ok := vendors[strings.ToLower(id)]; ok {
		return name
	}
	return id
}
