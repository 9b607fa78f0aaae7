// Package process reports the process table: state counts, top consumers
// and zombies.
package process

import (
	"context"
	"sort"
	"strconv"

	"horizonx-probe/internal/core"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/procfs"
	"horizonx-probe/internal/sysfs"
)

const (
	Key   = "processes"
	Title = "PROCESS INFORMATION"

	zombieLimit  = 5
	commandWidth = 60
)

var processHeaders = []string{"PID", "ST", "CPU TIME", "MEMORY", "COMMAND"}

type Collector struct {
	fs  sysfs.FS
	log logger.Logger
}

func NewCollector(fs sysfs.FS, log logger.Logger) *Collector {
	return &Collector{fs: fs, log: log}
}

func (c *Collector) Key() string   { return Key }
func (c *Collector) Title() string { return Title }

func rowLimit(v core.Verbosity) int {
	switch v {
	case core.Full:
		return 20
	case core.Detailed:
		return 10
	default:
		return 5
	}
}

func (c *Collector) Collect(ctx context.Context, v core.Verbosity) (*core.Category, error) {
	cat := core.NewCategory(Key, Title)

	procs := procfs.ReadAll(c.fs)
	if len(procs) == 0 {
		c.log.Warn("no readable processes", "path", c.fs.Path("/proc"))
	}

	var running, sleeping int
	var zombies []procfs.Process
	for _, p := range procs {
		switch p.State {
		case 'R':
			running++
		case 'S':
			sleeping++
		case 'Z':
			zombies = append(zombies, p)
		}
	}

	zombieSev := core.SeverityInfo
	if len(zombies) > 0 {
		zombieSev = core.SeverityWarn
	}
	cat.Info("Total Processes", core.Int(int64(len(procs))))
	cat.Info("Running", core.Int(int64(running)))
	cat.Info("Sleeping", core.Int(int64(sleeping)))
	cat.Set("Zombie Processes", core.Int(int64(len(zombies))), zombieSev)

	limit := rowLimit(v)

	byCPU := append([]procfs.Process(nil), procs...)
	sort.SliceStable(byCPU, func(i, j int) bool { return byCPU[i].CPUTicks() > byCPU[j].CPUTicks() })
	cat.AddTable(processTable("Top Processes by CPU", byCPU, limit))

	if v.AtLeast(core.Detailed) {
		byMem := append([]procfs.Process(nil), procs...)
		sort.SliceStable(byMem, func(i, j int) bool { return byMem[i].RSSBytes() > byMem[j].RSSBytes() })
		cat.AddTable(processTable("Top Processes by Memory", byMem, limit))
	}

	if len(zombies) > 0 {
		tbl := core.NewTable("Zombie Processes", "PID", "COMMAND")
		for i, z := range zombies {
			if i == zombieLimit {
				break
			}
			tbl.Append(core.SeverityWarn, strconv.Itoa(z.PID), z.Comm)
		}
		cat.AddTable(tbl)
	}

	return cat, nil
}

func processTable(name string, procs []procfs.Process, limit int) core.Table {
	tbl := core.NewTable(name, processHeaders...)
	for i, p := range procs {
		if i == limit {
			break
		}
		tbl.Append(core.SeverityInfo,
			strconv.Itoa(p.PID),
			string(p.State),
			strconv.FormatUint(p.CPUTicks(), 10),
			core.FormatUint(p.RSSBytes()),
			core.Truncate(p.Comm, commandWidth),
		)
	}
	return tbl
}
