package cpu

import (
	"context"
	"time"

	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "cpu"
	Title = "PROCESSOR INFORMATION"
)

const (
	DefaultSampleDelay = 500 * time.Millisecond

	detailedCoreLimit = 8
	freqCoreLimit     = 4
	featureLimit      = 5
)

var notableFeatures = []string{"vmx", "svm", "aes", "avx", "avx2", "sse4_1", "sse4_2", "lm"}

type Collector struct {
	fs    sysfs.FS
	log   logger.Logger
	delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

// CPUSpec is the aggregate of the /proc/cpuinfo records.
type CPUSpec struct {
	Model       string
	Vendor      string
	MHz         string
	CacheSize   string
	BogoMIPS    string
	Flags       []string
	Processors  int
	PhysicalIDs map[string]struct{}
	CoreIDs     map[string]struct{}
}

// cpuStat is one cumulative counter line of /proc/stat.
type cpuStat struct {
	total uint64
	idle  uint64
}
