// Package procfs parses the per-process files under /proc shared by the
// system, process and user collectors.
package procfs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"horizonx-probe/internal/sysfs"
)

const pageSize = 4096

// Field positions counted from the first field after the closing paren.
const (
	fieldState     = 0
	fieldPPID      = 1
	fieldTTY       = 4
	fieldUTime     = 11
	fieldSTime     = 12
	fieldStartTime = 19
	fieldRSS       = 21
	minStatFields  = 22
)

var ErrMalformedStat = errors.New("malformed stat line")

type Stat struct {
	PID       int
	Comm      string
	State     byte
	PPID      int
	TTY       int64
	UTime     uint64
	STime     uint64
	StartTime uint64
	RSSPages  int64
}

func (s Stat) CPUTicks() uint64 { return s.UTime + s.STime }

func (s Stat) RSSBytes() uint64 {
	if s.RSSPages < 0 {
		return 0
	}
	return uint64(s.RSSPages) * pageSize
}

// ParseStat parses one /proc/<pid>/stat line. The command name may contain
// spaces and parentheses, so it runs up to the last ')'.
func ParseStat(line string) (Stat, error) {
	var st Stat

	open := strings.IndexByte(line, '(')
	closing := strings.LastIndexByte(line, ')')
	if open < 0 || closing < open {
		return st, ErrMalformedStat
	}

	pid, err := strconv.Atoi(strings.TrimSpace(line[:open]))
	if err != nil {
		return st, fmt.Errorf("%w: pid: %w", ErrMalformedStat, err)
	}
	st.PID = pid
	st.Comm = line[open+1 : closing]

	fields := strings.Fields(line[closing+1:])
	if len(fields) < minStatFields {
		return st, fmt.Errorf("%w: %d fields", ErrMalformedStat, len(fields))
	}
	if len(fields[fieldState]) != 1 {
		return st, fmt.Errorf("%w: state %q", ErrMalformedStat, fields[fieldState])
	}
	st.State = fields[fieldState][0]

	if st.PPID, err = strconv.Atoi(fields[fieldPPID]); err != nil {
		return st, fmt.Errorf("%w: ppid: %w", ErrMalformedStat, err)
	}
	if st.TTY, err = strconv.ParseInt(fields[fieldTTY], 10, 64); err != nil {
		return st, fmt.Errorf("%w: tty_nr: %w", ErrMalformedStat, err)
	}
	if st.UTime, err = strconv.ParseUint(fields[fieldUTime], 10, 64); err != nil {
		return st, fmt.Errorf("%w: utime: %w", ErrMalformedStat, err)
	}
	if st.STime, err = strconv.ParseUint(fields[fieldSTime], 10, 64); err != nil {
		return st, fmt.Errorf("%w: stime: %w", ErrMalformedStat, err)
	}
	if st.StartTime, err = strconv.ParseUint(fields[fieldStartTime], 10, 64); err != nil {
		return st, fmt.Errorf("%w: starttime: %w", ErrMalformedStat, err)
	}
	if st.RSSPages, err = strconv.ParseInt(fields[fieldRSS], 10, 64); err != nil {
		return st, fmt.Errorf("%w: rss: %w", ErrMalformedStat, err)
	}
	return st, nil
}

func StateName(state byte) string {
	switch state {
	case 'R':
		return "Running"
	case 'S':
		return "Sleeping"
	case 'D':
		return "Disk sleep"
	case 'Z':
		return "Zombie"
	case 'T':
		return "Stopped"
	case 't':
		return "Tracing stop"
	case 'X', 'x':
		return "Dead"
	case 'I':
		return "Idle"
	case 'W':
		return "Paging"
	case 'P':
		return "Parked"
	}
	return "Unknown"
}

// Process is one row of the process table.
type Process struct {
	Stat
	UID     int
	Command string
}

// HasTTY reports whether the process has a controlling terminal.
func (p Process) HasTTY() bool { return p.TTY != 0 }

// ListPIDs returns the numeric entries of /proc in ascending order.
func ListPIDs(fs sysfs.FS) []int {
	var pids []int
	for _, name := range fs.ReadDir("/proc") {
		pid, err := strconv.Atoi(name)
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}

// ReadProcess reads stat, status and cmdline for pid. Any failure means the
// process vanished or is unreadable and the caller skips it.
func ReadProcess(fs sysfs.FS, pid int) (Process, error) {
	dir := "/proc/" + strconv.Itoa(pid)

	raw, ok := fs.ReadString(dir + "/stat")
	if !ok {
		return Process{}, fmt.Errorf("pid %d: stat unreadable", pid)
	}
	st, err := ParseStat(raw)
	if err != nil {
		return Process{}, fmt.Errorf("pid %d: %w", pid, err)
	}

	p := Process{Stat: st, UID: -1, Command: st.Comm}

	for _, line := range fs.ReadLines(dir + "/status") {
		if !strings.HasPrefix(line, "Uid:") {
			continue
		}
		fields := strings.Fields(line[len("Uid:"):])
		if len(fields) > 0 {
			if uid, err := strconv.Atoi(fields[0]); err == nil {
				p.UID = uid
			}
		}
		break
	}
	if p.UID < 0 {
		return Process{}, fmt.Errorf("pid %d: uid unavailable", pid)
	}

	if cmd, ok := fs.ReadBytes(dir + "/cmdline"); ok && len(cmd) > 0 {
		first, _, _ := strings.Cut(string(cmd), "\x00")
		if first != "" {
			p.Command = first
		}
	}
	return p, nil
}

// ReadAll sweeps /proc, silently skipping processes that cannot be read.
func ReadAll(fs sysfs.FS) []Process {
	pids := ListPIDs(fs)
	out := make([]Process, 0, len(pids))
	for _, pid := range pids {
		p, err := ReadProcess(fs, pid)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
