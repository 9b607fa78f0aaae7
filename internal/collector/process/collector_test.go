package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/sysfs"
)

type fakeProc struct {
	pid   int
	comm  string
	state byte
	ticks int
	rss   int
}

func procTree(t *testing.T, procs ...fakeProc) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range procs {
		dir := filepath.Join(root, "proc", fmt.Sprint(p.pid))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		stat := fmt.Sprintf("%d (%s) %c 1 1 1 0 -1 0 0 0 0 0 %d 0 0 0 20 0 1 0 100 1000 %d 0\n", p.pid, p.comm, p.state, p.ticks, p.rss)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte("Uid:\t1000\t1000\t1000\t1000\n"), 0o644))
	}
	return root
}

func manyProcs(n int) []fakeProc {
	out := make([]fakeProc, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fakeProc{pid: i, comm: fmt.Sprintf("p%d", i), state: 'S', ticks: i * 10, rss: (n - i + 1) * 100})
	}
	return out
}

func TestCollectCountsAndTables(t *testing.T) {
	procs := manyProcs(30)
	procs[0].state = 'R'
	procs[1].state = 'Z'
	procs[1].comm = "defunct ) (child"
	root := procTree(t, procs...)

	tests := []struct {
		v        core.Verbosity
		rows     int
		byMemory bool
	}{
		{core.Basic, 5, false},
		{core.Detailed, 10, true},
		{core.Full, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			cat, err := NewCollector(sysfs.New(root), logger.Discard()).Collect(context.Background(), tt.v)
			require.NoError(t, err)

			total, _ := cat.Metric("Total Processes")
			assert.Equal(t, "30", total.Value.String())
			running, _ := cat.Metric("Running")
			assert.Equal(t, "1", running.Value.String())
			sleeping, _ := cat.Metric("Sleeping")
			assert.Equal(t, "28", sleeping.Value.String())

			byCPU, ok := cat.Table("Top Processes by CPU")
			require.True(t, ok)
			require.Len(t, byCPU.Rows, tt.rows)
			assert.Equal(t, "30", byCPU.Rows[0].Cells[0])
			assert.Equal(t, "300", byCPU.Rows[0].Cells[2])

			byMem, ok := cat.Table("Top Processes by Memory")
			assert.Equal(t, tt.byMemory, ok)
			if ok {
				assert.Equal(t, "1", byMem.Rows[0].Cells[0])
			}

			zombies, ok := cat.Table("Zombie Processes")
			require.True(t, ok)
			require.Len(t, zombies.Rows, 1)
			assert.Equal(t, []string{"2", "defunct ) (child"}, zombies.Rows[0].Cells)
			assert.Equal(t, core.SeverityWarn, cat.Severity())
		})
	}
}

func TestCollectHealthy(t *testing.T) {
	root := procTree(t, manyProcs(3)...)
	cat, err := NewCollector(sysfs.New(root), logger.Discard()).Collect(context.Background(), core.Full)
	require.NoError(t, err)

	_, ok := cat.Table("Zombie Processes")
	assert.False(t, ok)
	assert.Equal(t, core.SeverityInfo, cat.Severity())
}

func TestZombieListingCapped(t *testing.T) {
	procs := manyProcs(8)
	for i := range procs {
		procs[i].state = 'Z'
	}
	cat, err := NewCollector(sysfs.New(procTree(t, procs...)), logger.Discard()).Collect(context.Background(), core.Basic)
	require.NoError(t, err)

	z, _ := cat.Metric("Zombie Processes")
	assert.Equal(t, "8", z.Value.String())
	tbl, _ := cat.Table("Zombie Processes")
	assert.Len(t, tbl.Rows, zombieLimit)
}
