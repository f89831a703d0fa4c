package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/monify-labs/hostreport/internal/locale"
	"github.com/monify-labs/hostreport/internal/units"
)

// Storage lists mounted volumes with their usage. A usage failure on one
// volume only replaces that volume's usage row.
func (p *Prober) Storage(ctx context.Context, t locale.Table) Result {
	partitions, err := p.src.Partitions(ctx, false)
	if err != nil {
		p.log.WithError(err).WithField("probe", "storage").Debug("Partition enumeration failed")
		return Unavailable(t.T(locale.KeyInfoUnavailable))
	}

	volumes := make([]disk.PartitionStat, 0, len(partitions))
	for _, partition := range partitions {
		if p.shouldSkipFilesystem(partition.Fstype) {
			continue
		}
		volumes = append(volumes, partition)
	}
	if len(volumes) == 0 {
		return Unavailable(t.T(locale.KeyInfoUnavailable))
	}

	lines := make([]string, 0, 2*len(volumes))
	for idx, volume := range volumes {
		prefix, subPrefix := "├─", "│   "
		if idx == len(volumes)-1 {
			prefix, subPrefix = "└─", "    "
		}

		lines = append(lines, fmt.Sprintf("%s %s: %s (%s)", prefix, t.T(locale.KeyDrive), volume.Device, volume.Fstype))

		usage, err := p.src.DiskUsage(ctx, volume.Mountpoint)
		if err != nil || usage == nil {
			p.log.WithError(err).WithField("probe", "storage").WithField("mount", volume.Mountpoint).Debug("Disk usage query failed")
			lines = append(lines, subPrefix+t.T(locale.KeyInfoUnavailable))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%s: %s / %s (%.1f%%)", subPrefix, t.T(locale.KeySpace),
			units.FormatBytes(usage.Used), units.FormatBytes(usage.Total), usage.UsedPercent))
	}

	return Success(strings.Join(lines, "\n"))
}

// shouldSkipFilesystem reports whether fstype is a pseudo or image filesystem.
func (p *Prober) shouldSkipFilesystem(fstype string) bool {
	for _, skip := range p.opts.SkipFilesystems {
		if strings.EqualFold(skip, fstype) {
			return true
		}
	}
	return false
}
