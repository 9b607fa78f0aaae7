package storage

import (
	"context"

	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "storage"
	Title = "STORAGE INFORMATION"
)

const (
	sectorSize    = 512
	minMountBytes = 1 << 20

	lightMountLimit = 3
	deviceListLimit = 5
	ioLimitDetailed = 5
	ioLimitFull     = 10
)

var excludedFSTypes = map[string]bool{
	"proc": true, "sysfs": true, "devpts": true, "tmpfs": true,
	"devtmpfs": true, "cgroup": true, "cgroup2": true, "pstore": true,
	"bpf": true, "tracefs": true, "debugfs": true, "securityfs": true,
	"fusectl": true, "configfs": true, "mqueue": true, "hugetlbfs": true,
}

// Usage is the statfs view of one mount.
type Usage struct {
	Total     uint64
	Used      uint64
	Available uint64
}

// UsageFunc queries filesystem statistics for a path.
type UsageFunc func(ctx context.Context, path string) (Usage, error)

type Collector struct {
	fs    sysfs.FS
	log   logger.Logger
	usage UsageFunc
}

type mount struct {
	Device string
	Point  string
	FSType string
}

type filesystem struct {
	mount
	Usage
	Percent float64
}

type blockDevice struct {
	Name   string
	Size   uint64
	Type   string
	Model  string
	Vendor string
}

type ioStat struct {
	Device       string
	ReadBytes    uint64
	WrittenBytes uint64
}
