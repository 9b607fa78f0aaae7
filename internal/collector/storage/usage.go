package storage

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"
)

// DiskUsage is the default UsageFunc backed by statfs.
func DiskUsage(ctx context.Context, path string) (Usage, error) {
	st, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		Total:     st.Total,
		Used:      st.Used,
		Available: st.Free,
	}, nil
}
