package probe

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/sirupsen/logrus"
)

// Sources are the backends the probes read from. Every field is a plain
// function so tests can replace any single backend.
type Sources struct {
	// GOOS selects platform branches at call time.
	GOOS string

	HostInfo func(ctx context.Context) (*host.InfoStat, error)
	Hostname func() (string, error)
	// Edition returns the Windows edition string. Nil elsewhere.
	Edition func() (string, error)

	CPUInfo          func(ctx context.Context) ([]cpu.InfoStat, error)
	CPUCounts        func(ctx context.Context, logical bool) (int, error)
	CPUPercent       func(ctx context.Context, interval time.Duration) ([]float64, error)
	CurrentFrequency func() (float64, error)

	VirtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)

	Partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	DiskUsage  func(ctx context.Context, path string) (*disk.UsageStat, error)

	// Run executes an external tool and returns its stdout. Console
	// windows are suppressed on Windows.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)

	// WMI is the management-instrumentation backend. Nil when unavailable.
	WMI WMISource
}

// DefaultSources wires the probes to gopsutil, os/exec and, on Windows, WMI.
func DefaultSources(log logrus.FieldLogger) Sources {
	return Sources{
		GOOS:     runtime.GOOS,
		HostInfo: host.InfoWithContext,
		Hostname: os.Hostname,
		Edition:  platformEdition(),

		CPUInfo:   cpu.InfoWithContext,
		CPUCounts: cpu.CountsWithContext,
		CPUPercent: func(ctx context.Context, interval time.Duration) ([]float64, error) {
			return cpu.PercentWithContext(ctx, interval, false)
		},
		CurrentFrequency: readCurrentFrequency,

		VirtualMemory: mem.VirtualMemoryWithContext,

		Partitions: disk.PartitionsWithContext,
		DiskUsage:  disk.UsageWithContext,

		Run: runCommand,
		WMI: platformWMI(log),
	}
}

// runCommand runs name with args and returns stdout. The caller's context
// carries the timeout; expiry kills the process.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	return cmd.Output()
}
