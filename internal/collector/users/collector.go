// Package users reports interactive accounts, per-user resource usage and
// login history. It only runs at the deep run level.
package users

import (
	"context"
	"strconv"
	"time"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/procfs"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "users"
	Title = "USER INFORMATION"

	DefaultWtmpPath = "/var/log/wtmp"

	topUserLimit  = 5
	historyLimit  = 10
	sessionLimit  = 5
	ramWarnBytes  = 1 << 30
	timestampForm = "2006-01-02 15:04:05"
)

type Collector struct {
	fs       sysfs.FS
	log      logger.Logger
	wtmpPath string
	now      func() time.Time
	hz       int64
}

func NewCollector(fs sysfs.FS, log logger.Logger, wtmpPath string) *Collector {
	if wtmpPath == "" {
		wtmpPath = DefaultWtmpPath
	}
	return &Collector{
		fs:       fs,
		log:      log,
		wtmpPath: wtmpPath,
		now:      time.Now,
		hz:       procfs.ClockTicks(),
	}
}

func (c *Collector) Key() string   { return Key }
func (c *Collector) Title() string { return Title }

func (c *Collector) Collect(ctx context.Context, v core.Verbosity) (*core.Category, error) {
	cat := core.NewCategory(Key, Title)
	if !v.AtLeast(core.Full) {
		cat.Info("Status", core.Text("available at deep run level"))
		return cat, nil
	}

	now := c.now()
	boot, haveBoot := procfs.BootTime(c.fs, now)
	startedAt := func(p procfs.Process) time.Time {
		if !haveBoot {
			return time.Time{}
		}
		return procfs.StartedAt(boot, p.StartTime, c.hz)
	}

	accounts := procfs.ReadPasswd(c.fs)
	if accounts == nil {
		c.log.Warn("passwd unavailable", "path", "/etc/passwd")
	}
	agg := aggregateUsers(accounts, procfs.ReadAll(c.fs), startedAt)

	loggedIn := sortedKeys(agg.loggedIn)
	cat.Info("Interactive Users", core.Int(int64(agg.interactive)))
	cat.Info("Active Users", core.Int(int64(len(agg.stats))))
	cat.Info("Logged-in Users", core.List(loggedIn))

	if len(agg.stats) > 0 {
		c.addTopUsers(cat, agg)
		c.addResourceUsage(cat, agg)
	}
	c.addLoginHistory(cat, agg, now)

	if len(loggedIn) > 1 {
		tbl := core.NewTable("Active Sessions", "User", "Sessions")
		for i, name := range loggedIn {
			if i == sessionLimit {
				break
			}
			tbl.Append(core.SeverityInfo, name, strconv.Itoa(agg.stats[name].TTYProcs))
		}
		cat.AddTable(tbl)
	}

	return cat, nil
}

func (c *Collector) addTopUsers(cat *core.Category, agg aggregate) {
	tbl := core.NewTable("Top Users by Process Count", "User", "Home", "Processes")
	for i, s := range agg.sorted(func(x, y *userStats) bool { return x.Processes > y.Processes }) {
		if i == topUserLimit {
			break
		}
		home := s.Home
		if home == "" {
			home = "N/A"
		}
		tbl.Append(core.SeverityInfo, s.Name, home, strconv.Itoa(s.Processes))
	}
	cat.AddTable(tbl)
}

func (c *Collector) addResourceUsage(cat *core.Category, agg aggregate) {
	tbl := core.NewTable("Resource Usage by User", "User", "Processes", "CPU Time", "RAM Usage")
	for i, s := range agg.sorted(func(x, y *userStats) bool { return x.RSSBytes > y.RSSBytes }) {
		if i == topUserLimit {
			break
		}
		sev := core.SeverityInfo
		if s.RSSBytes > ramWarnBytes {
			sev = core.SeverityWarn
		}
		tbl.Append(sev, s.Name, strconv.Itoa(s.Processes), strconv.FormatUint(s.CPUTicks, 10), core.FormatUint(s.RSSBytes))
	}
	cat.AddTable(tbl)
}

// addLoginHistory merges wtmp records with the earliest-process fallback
// for users that have no record.
func (c *Collector) addLoginHistory(cat *core.Category, agg aggregate, now time.Time) {
	logins := c.readWtmp()

	for name, s := range agg.stats {
		if _, ok := logins[name]; !ok && !s.Earliest.IsZero() {
			logins[name] = s.Earliest
		}
	}

	users := make(map[string]bool)
	for name := range logins {
		if agg.known[name] || agg.loggedIn[name] {
			users[name] = true
		}
	}
	for name := range agg.loggedIn {
		users[name] = true
	}
	if len(users) == 0 {
		return
	}

	tbl := core.NewTable("Login History", "User", "Last Login", "Session Duration", "Status")
	for i, name := range sortedKeys(users) {
		if i == historyLimit {
			break
		}
		last, duration := "N/A", "N/A"
		if at, ok := logins[name]; ok {
			last = at.Format(timestampForm)
			duration = core.FormatSession(now.Sub(at))
		}
		status := "Inactive"
		if agg.loggedIn[name] {
			status = "Active"
		}
		tbl.Append(core.SeverityInfo, name, last, duration, status)
	}
	cat.AddTable(tbl)
}

func (c *Collector) readWtmp() map[string]time.Time {
	f, err := c.fs.Open(c.wtmpPath)
	if err != nil {
		c.log.Debug("login records unavailable", "path", c.wtmpPath, "error", err)
		return make(map[string]time.Time)
	}
	defer f.Close()
	return readLogins(f)
}
