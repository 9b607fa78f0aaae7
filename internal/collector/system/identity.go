package system

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func (c *Collector) getIdentity() identity {
	id := identity{
		Hostname:      c.readKernel("hostname"),
		KernelName:    c.readKernel("ostype"),
		KernelRelease: c.readKernel("osrelease"),
		KernelVersion: c.readKernel("version"),
	}

	var uts unix.Utsname
	haveUname := unix.Uname(&uts) == nil
	fill := func(dst *string, field []byte) {
		if *dst == "" && haveUname {
			*dst = unix.ByteSliceToString(field)
		}
		if *dst == "" {
			*dst = unknown
		}
	}

	fill(&id.Hostname, uts.Nodename[:])
	fill(&id.KernelName, uts.Sysname[:])
	fill(&id.KernelRelease, uts.Release[:])
	fill(&id.KernelVersion, uts.Version[:])

	if haveUname {
		id.Architecture = unix.ByteSliceToString(uts.Machine[:])
	}
	if id.Architecture == "" {
		id.Architecture = runtime.GOARCH
	}
	return id
}

func (c *Collector) readKernel(name string) string {
	path := "/proc/sys/kernel/" + name
	s, ok := c.fs.ReadString(path)
	if !ok {
		c.log.Debug("kernel identity unavailable", "path", path)
	}
	return s
}
