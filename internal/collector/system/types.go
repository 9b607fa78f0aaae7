package system

import (
	"time"

	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "os"
	Title = "SYSTEM OVERVIEW"
)

const cmdlineLimit = 100

type Collector struct {
	fs  sysfs.FS
	log logger.Logger
	now func() time.Time
}

type identity struct {
	Hostname      string
	KernelName    string
	KernelRelease string
	KernelVersion string
	Architecture  string
}

type distribution struct {
	Name    string
	ID      string
	Version string
}

type processCounts struct {
	Running  int
	Sleeping int
	Zombie   int
}
