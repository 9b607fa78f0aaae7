package procfs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horizonx-probe/internal/sysfs"
)

func statLine(pid int, comm string, state byte, tty, utime, stime, start, rss int) string {
	return fmt.Sprintf("%d (%s) %c 1 %d %d %d -1 4194560 100 0 0 0 %d %d 0 0 20 0 1 0 %d 1000000 %d 18446744073709551615",
		pid, comm, state, pid, pid, tty, utime, stime, start, rss)
}

func writeProc(t *testing.T, root string, pid, uid int, stat, cmdline string) {
	t.Helper()
	dir := filepath.Join(root, "proc", fmt.Sprint(pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(stat+"\n"), 0o644))
	status := fmt.Sprintf("Name:\tx\nState:\tS (sleeping)\nUid:\t%d\t%d\t%d\t%d\n", uid, uid, uid, uid)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(cmdline), 0o644))
}

func TestParseStat(t *testing.T) {
	st, err := ParseStat(statLine(1234, "bash", 'S', 34817, 150, 50, 9000, 2048))
	require.NoError(t, err)

	assert.Equal(t, 1234, st.PID)
	assert.Equal(t, "bash", st.Comm)
	assert.Equal(t, byte('S'), st.State)
	assert.Equal(t, 1, st.PPID)
	assert.EqualValues(t, 34817, st.TTY)
	assert.EqualValues(t, 200, st.CPUTicks())
	assert.EqualValues(t, 9000, st.StartTime)
	assert.EqualValues(t, 2048*4096, st.RSSBytes())
}

func TestParseStatCommWithParens(t *testing.T) {
	st, err := ParseStat(statLine(77, "weird ) (name", 'R', 0, 1, 2, 3, 4))
	require.NoError(t, err)

	assert.Equal(t, "weird ) (name", st.Comm)
	assert.Equal(t, byte('R'), st.State)
	assert.EqualValues(t, 3, st.CPUTicks())
	assert.EqualValues(t, 4*4096, st.RSSBytes())
}

func TestParseStatMalformed(t *testing.T) {
	tests := []string{
		"",
		"1234 bash S 1",
		"1234 (bash) S 1 2 3",
		"abc (bash) S 1 1 1 0 -1 0 0 0 0 0 1 2 0 0 20 0 1 0 3 100 4",
		"1 (x) S notanint 1 1 0 -1 0 0 0 0 0 1 2 0 0 20 0 1 0 3 100 4",
	}
	for _, line := range tests {
		_, err := ParseStat(line)
		assert.ErrorIs(t, err, ErrMalformedStat, line)
	}
}

func TestReadAll(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, 1, 0, statLine(1, "systemd", 'S', 0, 10, 10, 1, 100), "/sbin/init\x00splash\x00")
	writeProc(t, root, 200, 1000, statLine(200, "bash", 'S', 34816, 5, 5, 500, 50), "")
	writeProc(t, root, 300, 1000, "300 (broken", "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "proc", "self"), 0o755))

	procs := ReadAll(sysfs.New(root))
	require.Len(t, procs, 2)

	assert.Equal(t, "/sbin/init", procs[0].Command)
	assert.Equal(t, 0, procs[0].UID)
	assert.False(t, procs[0].HasTTY())

	assert.Equal(t, "bash", procs[1].Command)
	assert.Equal(t, 1000, procs[1].UID)
	assert.True(t, procs[1].HasTTY())
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "Zombie", StateName('Z'))
	assert.Equal(t, "Disk sleep", StateName('D'))
	assert.Equal(t, "Unknown", StateName('?'))
}

func TestReadPasswd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "etc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "etc", "passwd"), []byte(
		"root:x:0:0:root:/root:/bin/bash\n"+
			"daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin\n"+
			"alice:x:1000:1000:Alice:/home/alice:/bin/bash\n"+
			"svc:x:1001:1001::/srv:/bin/false\n"+
			"broken:line\n"), 0o644))

	users := ReadPasswd(sysfs.New(root))
	require.Len(t, users, 4)

	var interactive []string
	for _, u := range users {
		if u.Interactive(InteractiveUIDFloor) {
			interactive = append(interactive, u.Name)
		}
	}
	assert.Equal(t, []string{"alice"}, interactive)
}

func TestBootTime(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "proc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "proc", "stat"), []byte("cpu 1 2 3 4\nbtime 1699990000\n"), 0o644))

	boot, ok := BootTime(sysfs.New(root), now)
	require.True(t, ok)
	assert.Equal(t, int64(1699990000), boot.Unix())

	fallback := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(fallback, "proc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(fallback, "proc", "uptime"), []byte("3600.50 100.00\n"), 0o644))

	boot, ok = BootTime(sysfs.New(fallback), now)
	require.True(t, ok)
	assert.Equal(t, now.Add(-3600500*time.Millisecond), boot)

	_, ok = BootTime(sysfs.New(t.TempDir()), now)
	assert.False(t, ok)
}

func TestStartedAt(t *testing.T) {
	boot := time.Unix(1000, 0)
	assert.Equal(t, time.Unix(1010, 0), StartedAt(boot, 1000, 100))
	assert.Equal(t, time.Unix(1010, 0), StartedAt(boot, 1000, 0))
}

func TestClockTicks(t *testing.T) {
	assert.Positive(t, ClockTicks())
}
