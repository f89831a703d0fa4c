package probe

import (
	"context"
	"fmt"

	"github.com/monify-labs/hostreport/internal/locale"
	"github.com/monify-labs/hostreport/internal/units"
)

// Memory reports total, available and used RAM.
func (p *Prober) Memory(ctx context.Context, t locale.Table) Result {
	vmem, err := p.src.VirtualMemory(ctx)
	if err != nil || vmem == nil {
		p.log.WithError(err).WithField("probe", "memory").Debug("Virtual memory query failed")
		return Unavailable(t.T(locale.KeyInfoUnavailable))
	}

	rows := []string{
		field(t, locale.KeyTotal, units.FormatBytes(vmem.Total)),
		field(t, locale.KeyAvailable, units.FormatBytes(vmem.Available)),
		field(t, locale.KeyInUse, fmt.Sprintf("%s (%.1f%%)", units.FormatBytes(vmem.Used), vmem.UsedPercent)),
	}
	return Success(tree(rows))
}
