package memory

import (
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "memory"
	Title = "MEMORY INFORMATION"
)

type Collector struct {
	fs  sysfs.FS
	log logger.Logger
}

// memInfo holds /proc/meminfo values; sizes are bytes, HugePages_* counts.
type memInfo map[string]uint64

func (m memInfo) get(key string) uint64 { return m[key] }

type usage struct {
	Total     uint64
	Available uint64
	Used      uint64
	Percent   float64
}
