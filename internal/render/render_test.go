package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizonx-probe/internal/core"
)

func sampleSnapshot(v core.Verbosity) *core.Snapshot {
	b := core.NewSnapshotBuilder(v, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC))
	b.SetHostname("box01")

	osCat := core.NewCategory("os", "SYSTEM OVERVIEW")
	osCat.Info("Hostname", core.Text("box01"))
	osCat.Info("Distribution", core.Text("Unknown"))
	osCat.Info("Loaded Modules", core.List([]string{"ext4", "nvme", "kvm", "tun", "bridge"}))
	b.Add(osCat)

	mem := core.NewCategory("memory", "MEMORY INFORMATION")
	mem.Set("Usage Percentage", core.Text("93.0%"), core.SeverityCritical)
	b.Add(mem)

	proc := core.NewCategory("processes", "PROCESS INFORMATION")
	proc.Set("Zombie Processes", core.Int(1), core.SeverityWarn)
	t := core.NewTable("Zombie Processes", "PID", "COMMAND")
	t.Append(core.SeverityWarn, "4242", "defunct-worker")
	proc.AddTable(t)
	b.Add(proc)

	return b.Build()
}

func TestRenderer_Snapshot(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Version: "1.2.3"})

	require.NoError(t, r.Snapshot(sampleSnapshot(core.Detailed)))
	out := buf.String()

	assert.Contains(t, out, "LINUX SYSTEM SNAPSHOT")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "BALANCED (Detailed)")
	assert.Contains(t, out, "2026-03-01 12:30:00")
	assert.Contains(t, out, "Host: box01")

	assert.Contains(t, out, "SYSTEM OVERVIEW")
	assert.Contains(t, out, "MEMORY INFORMATION [CRITICAL]")
	assert.Contains(t, out, "PROCESS INFORMATION [WARNING]")
	assert.Contains(t, out, "UNKNOWN")
	assert.Contains(t, out, "5 items")
	assert.Contains(t, out, "defunct-worker")

	assert.Contains(t, out, "COLLECTION SUMMARY")
	assert.Contains(t, out, "ISSUES DETECTED")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestRenderer_FullShowsListPreview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, Options{}).Snapshot(sampleSnapshot(core.Full)))
	assert.Contains(t, buf.String(), "ext4, nvme, kvm ... (+2 more)")
}

func TestRenderer_MaxColumnWidth(t *testing.T) {
	b := core.NewSnapshotBuilder(core.Basic, time.Now())
	c := core.NewCategory("cpu", "PROCESSOR INFORMATION")
	c.Info("Model", core.Text(strings.Repeat("x", 80)))
	b.Add(c)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, Options{MaxColumnWidth: 20}).Snapshot(b.Build()))
	assert.Contains(t, buf.String(), strings.Repeat("x", 17)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 21))
}

func TestRenderer_Messages(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})
	require.NoError(t, r.Interrupted())
	require.NoError(t, r.Error("collector cpu failed"))
	assert.Contains(t, buf.String(), "Collection interrupted by user")
	assert.Contains(t, buf.String(), "Error: collector cpu failed")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value core.Value
		level core.Verbosity
		want  string
	}{
		{"short list", core.List([]string{"a", "b"}), core.Basic, "a, b"},
		{"long list basic", core.List([]string{"a", "b", "c", "d"}), core.Basic, "4 items"},
		{"long list full", core.List([]string{"a", "b", "c", "d"}), core.Full, "a, b, c ... (+1 more)"},
		{"map basic", core.Map(map[string]string{"x": "1"}), core.Detailed, "1 keys"},
		{"map full", core.Map(map[string]string{"y": "2", "x": "1"}), core.Full, "x=1, y=2"},
		{"int", core.Int(1234567), core.Basic, "1,234,567"},
		{"float", core.Number(1.5), core.Basic, "1.50"},
		{"text", core.Text("hello"), core.Basic, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value, tt.level))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "UNKNOWN", StatusLabel(core.Metric{Value: core.Text("N/A")}))
	assert.Equal(t, "OK", StatusLabel(core.Metric{Value: core.Text("fine")}))
	assert.Equal(t, "WARNING", StatusLabel(core.Metric{Value: core.Text("Unknown"), Severity: core.SeverityWarn}))
}
