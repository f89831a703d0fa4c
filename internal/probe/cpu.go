package probe

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/monify-labs/hostreport/internal/locale"
)

// curFreqPath is where Linux exposes cpu0's current clock in kHz.
var curFreqPath = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq"

// CPU reports processor model, core and thread counts, usage and clock.
// The section always has five rows; the last one carries either the
// frequency or an explicit "not available" line.
func (p *Prober) CPU(ctx context.Context, t locale.Table) Result {
	notAvailable := t.T(locale.KeyNotAvailable)

	model := notAvailable
	maxMHz := 0.0
	infos, err := p.src.CPUInfo(ctx)
	if err != nil {
		p.log.WithError(err).WithField("probe", "cpu").Debug("CPU info query failed")
	} else if len(infos) > 0 {
		if name := strings.TrimSpace(infos[0].ModelName); name != "" {
			model = name
		}
		maxMHz = infos[0].Mhz
	}

	rows := []string{
		field(t, locale.KeyProcessor, model),
		field(t, locale.KeyPhysicalCores, p.cpuCount(ctx, false, notAvailable)),
		field(t, locale.KeyLogicalCores, p.cpuCount(ctx, true, notAvailable)),
		field(t, locale.KeyUsage, p.cpuUsage(ctx, notAvailable)),
	}

	if maxMHz > 0 {
		freq := fmt.Sprintf("%.2f MHz", maxMHz)
		if cur, ok := p.currentFrequency(); ok {
			freq += fmt.Sprintf(" (%s %.2f MHz)", t.T(locale.KeyCurrentFrequency), cur)
		}
		rows = append(rows, field(t, locale.KeyMaxFrequency, freq))
	} else {
		rows = append(rows, t.T(locale.KeyFrequencyUnavailable))
	}

	return Success(tree(rows))
}

func (p *Prober) cpuCount(ctx context.Context, logical bool, fallback string) string {
	n, err := p.src.CPUCounts(ctx, logical)
	if err != nil || n <= 0 {
		p.log.WithError(err).WithField("probe", "cpu").WithField("logical", logical).Debug("CPU count unavailable")
		return fallback
	}
	return strconv.Itoa(n)
}

func (p *Prober) cpuUsage(ctx context.Context, fallback string) string {
	if p.src.CPUPercent == nil {
		return fallback
	}
	percentages, err := p.src.CPUPercent(ctx, p.opts.CPUSampleInterval)
	if err != nil || len(percentages) == 0 {
		p.log.WithError(err).WithField("probe", "cpu").Debug("CPU usage unavailable")
		return fallback
	}
	return fmt.Sprintf("%.1f%%", percentages[0])
}

func (p *Prober) currentFrequency() (float64, bool) {
	if p.src.CurrentFrequency == nil {
		return 0, false
	}
	mhz, err := p.src.CurrentFrequency()
	if err != nil || mhz <= 0 {
		return 0, false
	}
	return mhz, true
}

// readCurrentFrequency returns cpu0's current clock in MHz.
func readCurrentFrequency() (float64, error) {
	data, err := os.ReadFile(curFreqPath)
	if err != nil {
		return 0, err
	}
	khz, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", curFreqPath, err)
	}
	return khz / 1000, nil
}
