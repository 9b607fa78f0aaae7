package cpu

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

func write(t *testing.T, root, p, content string) {
	t.Helper()
	full := filepath.Join(root, p)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func cpuinfo(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "processor\t: %d\nvendor_id\t: GenuineIntel\nmodel name\t: Intel(R) Xeon(R) CPU @ 2.20GHz\n", i)
		fmt.Fprintf(&b, "cpu MHz\t\t: %d.000\ncache size\t: 33792 KB\nphysical id\t: 0\ncore id\t\t: %d\n", 2200+i, i/2)
		b.WriteString("flags\t\t: fpu vme lm sse4_1 sse4_2 aes avx avx2 vmx\nbogomips\t: 4400.00\n\n")
	}
	return b.String()
}

func statFile(cores int, busy, idle uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cpu  %d 0 0 %d 0 0 0 0 0 0\n", busy*uint64(cores), idle*uint64(cores))
	for i := 0; i < cores; i++ {
		fmt.Fprintf(&b, "cpu%d %d 0 0 %d 0 0 0 0 0 0\n", i, busy, idle)
	}
	b.WriteString("intr 1234567 0 0\nctxt 98765432\nbtime 1700000000\n")
	return b.String()
}

func newTestCollector(t *testing.T, root string, after string) *Collector {
	c := NewCollector(sysfs.New(root), logger.Discard(), time.Millisecond)
	c.sleep = func(context.Context, time.Duration) error {
		write(t, root, "/proc/stat", after)
		return nil
	}
	return c
}

func TestUsagePercent(t *testing.T) {
	tests := []struct {
		name          string
		before, after cpuStat
		want          float64
	}{
		{"identical totals", cpuStat{total: 1000, idle: 800}, cpuStat{total: 1000, idle: 800}, 0},
		{"idle unchanged", cpuStat{total: 1000, idle: 800}, cpuStat{total: 1100, idle: 800}, 100},
		{"half busy", cpuStat{total: 1000, idle: 800}, cpuStat{total: 1200, idle: 900}, 50},
		{"counter went backwards", cpuStat{total: 1000, idle: 800}, cpuStat{total: 900, idle: 700}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, usagePercent(tt.before, tt.after), 0.0001)
		})
	}
}

func TestParseCPUStat(t *testing.T) {
	name, st, ok := parseCPUStat("cpu3 10 20 30 40 50 0 0 0 0 0")
	require.True(t, ok)
	assert.Equal(t, "cpu3", name)
	assert.EqualValues(t, 150, st.total)
	assert.EqualValues(t, 40, st.idle)

	_, _, ok = parseCPUStat("cpu x y")
	assert.False(t, ok)
}

func TestCollectBasic(t *testing.T) {
	root := t.TempDir()
	write(t, root, "/proc/cpuinfo", cpuinfo(4))

	cat, err := NewCollector(sysfs.New(root), logger.Discard(), 0).Collect(context.Background(), core.Basic)
	require.NoError(t, err)

	get := func(name string) string {
		m, ok := cat.Metric(name)
		require.True(t, ok, name)
		return m.Value.String()
	}
	assert.Equal(t, "Intel(R) Xeon(R) CPU @ 2.20GHz", get("Model"))
	assert.Equal(t, "GenuineIntel", get("Vendor"))
	assert.Equal(t, "4", get("Logical Processors"))
	assert.Equal(t, "1", get("Physical CPUs"))
	assert.Equal(t, "2", get("Cores per CPU"))

	_, ok := cat.Metric("Core 0 Usage")
	assert.False(t, ok)
}

func TestCollectMissingCPUInfo(t *testing.T) {
	cat, err := NewCollector(sysfs.New(t.TempDir()), logger.Discard(), 0).Collect(context.Background(), core.Full)
	require.NoError(t, err)

	status, ok := cat.Metric("Status")
	require.True(t, ok)
	assert.Equal(t, core.SeverityCritical, status.Severity)
	assert.Equal(t, core.SeverityCritical, cat.Severity())
}

func TestCollectDetailedLimitsCores(t *testing.T) {
	root := t.TempDir()
	write(t, root, "/proc/cpuinfo", cpuinfo(12))
	write(t, root, "/proc/stat", statFile(12, 100, 900))

	c := newTestCollector(t, root, statFile(12, 170, 930))
	cat, err := c.Collect(context.Background(), core.Detailed)
	require.NoError(t, err)

	freq, _ := cat.Metric("Current Frequency")
	assert.Equal(t, "2200.000 MHz", freq.Value.String())

	for i := 0; i < detailedCoreLimit; i++ {
		m, ok := cat.Metric(fmt.Sprintf("Core %d Usage", i))
		require.True(t, ok)
		assert.Equal(t, "70.0%", m.Value.String())
		assert.Equal(t, core.SeverityWarn, m.Severity)
	}
	_, ok := cat.Metric("Core 8 Usage")
	assert.False(t, ok)
	assert.Equal(t, core.SeverityWarn, cat.Severity())
}

func TestCollectFull(t *testing.T) {
	root := t.TempDir()
	write(t, root, "/proc/cpuinfo", cpuinfo(10))
	write(t, root, "/proc/stat", statFile(10, 100, 900))
	write(t, root, "/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq", "2200000\n")
	write(t, root, "/sys/devices/system/cpu/cpu1/cpufreq/scaling_cur_freq", "1800000\n")
	write(t, root, "/sys/class/hwmon/hwmon0/name", "coretemp\n")
	write(t, root, "/sys/class/hwmon/hwmon0/temp1_input", "85000\n")

	c := newTestCollector(t, root, statFile(10, 190, 910))
	cat, err := c.Collect(context.Background(), core.Full)
	require.NoError(t, err)

	_, ok := cat.Metric("Core 9 Usage")
	assert.True(t, ok)

	freqs, _ := cat.Metric("Core Frequencies")
	assert.Equal(t, []string{"cpu0: 2200 MHz", "cpu1: 1800 MHz"}, freqs.Value.Items())

	features, _ := cat.Metric("Notable Features")
	assert.Equal(t, []string{"vmx", "aes", "avx", "avx2", "sse4_1"}, features.Value.Items())

	ctxt, _ := cat.Metric("Context Switches")
	assert.Equal(t, "98,765,432", ctxt.Value.String())
	intr, _ := cat.Metric("Interrupts")
	assert.Equal(t, "1,234,567", intr.Value.String())

	temp, ok := cat.Metric("Temperature")
	require.True(t, ok)
	assert.Equal(t, "85.0°C", temp.Value.String())
	assert.Equal(t, core.SeverityCritical, temp.Severity)
	assert.Equal(t, core.SeverityCritical, cat.Severity())
}

func TestTemperaturePrefersThermalZone(t *testing.T) {
	root := t.TempDir()
	write(t, root, "/sys/class/thermal/thermal_zone0/temp", "45500\n")
	write(t, root, "/sys/class/hwmon/hwmon0/name", "coretemp\n")
	write(t, root, "/sys/class/hwmon/hwmon0/temp1_input", "90000\n")

	c := NewCollector(sysfs.New(root), logger.Discard(), 0)
	temp, ok := c.getTemperature()
	require.True(t, ok)
	assert.InDelta(t, 45.5, temp, 0.001)
}

func TestCollectCancelledDuringSample(t *testing.T) {
	root := t.TempDir()
	write(t, root, "/proc/cpuinfo", cpuinfo(1))
	write(t, root, "/proc/stat", statFile(1, 1, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCollector(sysfs.New(root), logger.Discard(), time.Hour)
	_, err := c.Collect(ctx, core.Detailed)
	assert.ErrorIs(t, err, context.Canceled)
}
