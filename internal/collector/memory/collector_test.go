package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

const meminfo = `MemTotal:       16000000 kB
MemFree:         1000000 kB
MemAvailable:    2400000 kB
Buffers:          200000 kB
Cached:          3000000 kB
SwapCached:            0 kB
Active:          8000000 kB
Inactive:        4000000 kB
SwapTotal:       2000000 kB
SwapFree:         500000 kB
Dirty:               128 kB
Writeback:             0 kB
Slab:             400000 kB
HugePages_Total:       4
HugePages_Free:        2
Hugepagesize:       2048 kB
Bogus:               n/a kB
`

func writeMeminfo(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "proc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "proc", "meminfo"), []byte(content), 0o644))
	return root
}

func TestComputeUsage(t *testing.T) {
	tests := []struct {
		name string
		info memInfo
		want usage
	}{
		{
			name: "available present",
			info: memInfo{"MemTotal": 1000, "MemFree": 100, "MemAvailable": 250},
			want: usage{Total: 1000, Available: 250, Used: 750, Percent: 75},
		},
		{
			name: "falls back to free",
			info: memInfo{"MemTotal": 1000, "MemFree": 100},
			want: usage{Total: 1000, Available: 100, Used: 900, Percent: 90},
		},
		{
			name: "zero total",
			info: memInfo{"MemFree": 100},
			want: usage{},
		},
		{
			name: "available above total is clamped",
			info: memInfo{"MemTotal": 100, "MemAvailable": 500},
			want: usage{Total: 100, Available: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeUsage(tt.info)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Total-got.Available, got.Used)
			assert.GreaterOrEqual(t, got.Percent, 0.0)
			assert.LessOrEqual(t, got.Percent, 100.0)
		})
	}
}

func TestParseMemInfo(t *testing.T) {
	info := parseMemInfo([]string{"MemTotal: 4 kB", "HugePages_Total: 3", "Broken: x kB", "nocolon"}, func(string, ...any) {})
	assert.Equal(t, memInfo{"MemTotal": 4096, "HugePages_Total": 3}, info)
}

func TestCollectFull(t *testing.T) {
	root := writeMeminfo(t, meminfo)
	cat, err := NewCollector(sysfs.New(root), logger.Discard()).Collect(context.Background(), core.Full)
	require.NoError(t, err)

	pct, ok := cat.Metric("Usage Percentage")
	require.True(t, ok)
	assert.Equal(t, "85.0%", pct.Value.String())
	assert.Equal(t, core.SeverityWarn, pct.Severity)
	sample, ok := pct.Value.Sample()
	require.True(t, ok)
	assert.InDelta(t, 85.0, sample, 0.001)

	total, ok := cat.Metric("Total Memory")
	require.True(t, ok)
	sample, ok = total.Value.Sample()
	require.True(t, ok)
	assert.Equal(t, 16000000.0*1024, sample)

	swap, ok := cat.Metric("Swap Usage")
	require.True(t, ok)
	assert.Equal(t, "75.0%", swap.Value.String())
	assert.Equal(t, core.SeverityWarn, swap.Severity)

	huge, ok := cat.Metric("HugePages (Total/Free)")
	require.True(t, ok)
	assert.Equal(t, "4 / 2", huge.Value.String())

	for _, name := range []string{"Buffers", "Cached", "Active Memory", "Dirty Pages", "Writeback", "Slab"} {
		_, ok := cat.Metric(name)
		assert.True(t, ok, name)
	}
	assert.Equal(t, core.SeverityWarn, cat.Severity())
}

func TestCollectBasicHidesSwap(t *testing.T) {
	root := writeMeminfo(t, meminfo)
	cat, err := NewCollector(sysfs.New(root), logger.Discard()).Collect(context.Background(), core.Basic)
	require.NoError(t, err)

	assert.Len(t, cat.Metrics(), 4)
	_, ok := cat.Metric("Swap Total")
	assert.False(t, ok)
}

func TestCollectCritical(t *testing.T) {
	root := writeMeminfo(t, "MemTotal: 1000 kB\nMemAvailable: 50 kB\n")
	cat, err := NewCollector(sysfs.New(root), logger.Discard()).Collect(context.Background(), core.Detailed)
	require.NoError(t, err)

	assert.Equal(t, core.SeverityCritical, cat.Severity())
	_, ok := cat.Metric("Swap Usage")
	assert.False(t, ok)
}

func TestCollectMissing(t *testing.T) {
	cat, err := NewCollector(sysfs.New(t.TempDir()), logger.Discard()).Collect(context.Background(), core.Basic)
	require.NoError(t, err)

	status, ok := cat.Metric("Status")
	require.True(t, ok)
	assert.Equal(t, core.SeverityCritical, status.Severity)
}
