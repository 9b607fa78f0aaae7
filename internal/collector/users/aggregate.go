package users

import (
	"sort"
	"strconv"
	"time"

	"horizonx-probe/internal/procfs"
)

type userStats struct {
	Name      string
	Home      string
	Processes int
	CPUTicks  uint64
	RSSBytes  uint64
	TTYProcs  int
	Earliest  time.Time
}

type aggregate struct {
	interactive int
	stats       map[string]*userStats
	loggedIn    map[string]bool
	known       map[string]bool
}

// aggregateUsers folds the process table into per-user totals. Only
// interactive accounts count; uids at or above the floor with no passwd
// entry show up as UID_<n>.
func aggregateUsers(accounts []procfs.User, procs []procfs.Process, startedAt func(procfs.Process) time.Time) aggregate {
	byUID := make(map[int]procfs.User, len(accounts))
	agg := aggregate{
		stats:    make(map[string]*userStats),
		loggedIn: make(map[string]bool),
		known:    make(map[string]bool),
	}
	for _, u := range accounts {
		if _, dup := byUID[u.UID]; !dup {
			byUID[u.UID] = u
		}
		if u.Interactive(procfs.InteractiveUIDFloor) {
			agg.interactive++
			agg.known[u.Name] = true
		}
	}

	for _, p := range procs {
		if p.UID < procfs.InteractiveUIDFloor {
			continue
		}
		var name, home string
		if u, ok := byUID[p.UID]; ok {
			if !u.Interactive(procfs.InteractiveUIDFloor) {
				continue
			}
			name, home = u.Name, u.Home
		} else {
			name = "UID_" + strconv.Itoa(p.UID)
		}

		s, ok := agg.stats[name]
		if !ok {
			s = &userStats{Name: name, Home: home}
			agg.stats[name] = s
		}
		s.Processes++
		s.CPUTicks += p.CPUTicks()
		s.RSSBytes += p.RSSBytes()
		if p.HasTTY() {
			s.TTYProcs++
			agg.loggedIn[name] = true
		}
		if startedAt != nil {
			if at := startedAt(p); !at.IsZero() && (s.Earliest.IsZero() || at.Before(s.Earliest)) {
				s.Earliest = at
			}
		}
	}
	return agg
}

func (a aggregate) sorted(less func(x, y *userStats) bool) []*userStats {
	out := make([]*userStats, 0, len(a.stats))
	for _, s := range a.stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].Name < out[j].Name
	})
	return out
}
