package probe

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monify-labs/hostreport/internal/locale"
)

const gib = uint64(1) << 30

var errBackend = errors.New("backend unavailable")

var en = locale.For("en")

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// linuxSources returns a healthy Linux host.
func linuxSources() Sources {
	return Sources{
		GOOS: "linux",
		HostInfo: func(context.Context) (*host.InfoStat, error) {
			return &host.InfoStat{
				Hostname:        "build-01",
				OS:              "linux",
				Platform:        "ubuntu",
				PlatformVersion: "24.04",
				KernelVersion:   "6.8.0-45-generic",
				KernelArch:      "x86_64",
			}, nil
		},
		Hostname: func() (string, error) { return "fallback-host", nil },
		CPUInfo: func(context.Context) ([]cpu.InfoStat, error) {
			return []cpu.InfoStat{{ModelName: "AMD Ryzen 7 5800X 8-Core Processor", Mhz: 4850}}, nil
		},
		CPUCounts: func(_ context.Context, logical bool) (int, error) {
			if logical {
				return 16, nil
			}
			return 8, nil
		},
		CPUPercent: func(context.Context, time.Duration) ([]float64, error) {
			return []float64{12.5}, nil
		},
		CurrentFrequency: func() (float64, error) { return 3600, nil },
		VirtualMemory: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 16 * gib, Available: 8 * gib, Used: 8 * gib, UsedPercent: 50}, nil
		},
		Partitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
			return []disk.PartitionStat{
				{Device: "/dev/nvme0n1p2", Mountpoint: "/", Fstype: "ext4"},
				{Device: "/dev/nvme0n1p1", Mountpoint: "/boot/efi", Fstype: "vfat"},
			}, nil
		},
		DiskUsage: func(_ context.Context, path string) (*disk.UsageStat, error) {
			return &disk.UsageStat{Path: path, Total: 100 * gib, Used: 25 * gib, UsedPercent: 25}, nil
		},
		Run: func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("exec: \"lspci\": executable file not found in $PATH")
		},
	}
}

func newTestProber(src Sources) *Prober {
	return New(src, Options{}, quietLogger())
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "body", Success("body").Text())
	assert.Equal(t, "reason", Unavailable("reason").Text())
	assert.True(t, Success("").OK)
	assert.False(t, Unavailable("x").OK)
}

func TestTree(t *testing.T) {
	assert.Equal(t, "└─ only", tree([]string{"only"}))
	assert.Equal(t, "┌─ a\n└─ b", tree([]string{"a", "b"}))
	assert.Equal(t, "┌─ a\n├─ b\n└─ c", tree([]string{"a", "b", "c"}))
}

func TestAllKeepsSectionOrder(t *testing.T) {
	var titles []locale.Key
	for _, probe := range newTestProber(linuxSources()).All() {
		titles = append(titles, probe.Title)
	}
	assert.Equal(t, []locale.Key{
		locale.KeyOS, locale.KeyCPU, locale.KeyMemory, locale.KeyDisks, locale.KeyDevices, locale.KeyLicense,
	}, titles)
}

func TestOS(t *testing.T) {
	res := newTestProber(linuxSources()).OS(context.Background(), en)
	require.True(t, res.OK)
	assert.Equal(t, strings.Join([]string{
		"┌─ System: Linux 6.8.0-45-generic",
		"├─ Version: ubuntu 24.04",
		"├─ Architecture: x86_64",
		"└─ Computer Name: build-01",
	}, "\n"), res.Body)
}

func TestOSWindowsEdition(t *testing.T) {
	src := linuxSources()
	src.GOOS = "windows"
	src.HostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{OS: "windows", Platform: "Microsoft Windows 11 Pro", PlatformVersion: "10.0.22631", KernelVersion: "10.0.22631", KernelArch: "x86_64"}, nil
	}
	src.Edition = func() (string, error) { return "Professional", nil }

	res := newTestProber(src).OS(context.Background(), en)
	require.True(t, res.OK)
	lines := strings.Split(res.Body, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "├─ Edition: Professional", lines[1])
	assert.Equal(t, "└─ Computer Name: fallback-host", lines[4])
}

func TestOSEditionFailureIsSwallowed(t *testing.T) {
	for name, edition := range map[string]func() (string, error){
		"error": func() (string, error) { return "", errBackend },
		"empty": func() (string, error) { return "  ", nil },
	} {
		t.Run(name, func(t *testing.T) {
			src := linuxSources()
			src.GOOS = "windows"
			src.Edition = edition

			res := newTestProber(src).OS(context.Background(), en)
			require.True(t, res.OK)
			assert.NotContains(t, res.Body, "Edition")
			assert.Len(t, strings.Split(res.Body, "\n"), 4)
		})
	}
}

func TestOSHostInfoFailure(t *testing.T) {
	src := linuxSources()
	src.HostInfo = func(context.Context) (*host.InfoStat, error) { return nil, errBackend }

	res := newTestProber(src).OS(context.Background(), en)
	assert.False(t, res.OK)
	assert.Equal(t, "Information not available", res.Text())
}

func TestCPU(t *testing.T) {
	res := newTestProber(linuxSources()).CPU(context.Background(), en)
	require.True(t, res.OK)
	assert.Equal(t, strings.Join([]string{
		"┌─ Processor: AMD Ryzen 7 5800X 8-Core Processor",
		"├─ Physical Cores: 8",
		"├─ Logical Threads: 16",
		"├─ Usage: 12.5%",
		"└─ Max Frequency: 4850.00 MHz (current 3600.00 MHz)",
	}, "\n"), res.Body)
}

func TestCPUFrequencyUnavailableKeepsRowCount(t *testing.T) {
	healthy := newTestProber(linuxSources()).CPU(context.Background(), en)

	src := linuxSources()
	src.CPUInfo = func(context.Context) ([]cpu.InfoStat, error) {
		return []cpu.InfoStat{{ModelName: "ARMv8 Processor rev 1 (v8l)"}}, nil
	}
	src.CurrentFrequency = func() (float64, error) { return 0, errBackend }
	res := newTestProber(src).CPU(context.Background(), en)

	require.True(t, res.OK)
	lines := strings.Split(res.Body, "\n")
	assert.Len(t, lines, len(strings.Split(healthy.Body, "\n")))
	assert.Equal(t, "└─ Frequency: Not available", lines[len(lines)-1])
}

func TestCPUFieldFailures(t *testing.T) {
	src := linuxSources()
	src.CPUInfo = func(context.Context) ([]cpu.InfoStat, error) { return nil, errBackend }
	src.CPUCounts = func(context.Context, bool) (int, error) { return 0, errBackend }
	src.CPUPercent = func(context.Context, time.Duration) ([]float64, error) { return nil, errBackend }

	res := newTestProber(src).CPU(context.Background(), en)
	require.True(t, res.OK)
	assert.Equal(t, strings.Join([]string{
		"┌─ Processor: Not available",
		"├─ Physical Cores: Not available",
		"├─ Logical Threads: Not available",
		"├─ Usage: Not available",
		"└─ Frequency: Not available",
	}, "\n"), res.Body)
}

func TestMemory(t *testing.T) {
	res := newTestProber(linuxSources()).Memory(context.Background(), en)
	require.True(t, res.OK)
	assert.Equal(t, strings.Join([]string{
		"┌─ Total: 16.00 GB",
		"├─ Available: 8.00 GB",
		"└─ In Use: 8.00 GB (50.0%)",
	}, "\n"), res.Body)
}

func TestMemoryZeroValues(t *testing.T) {
	src := linuxSources()
	src.VirtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{}, nil
	}

	res := newTestProber(src).Memory(context.Background(), en)
	require.True(t, res.OK)
	assert.Contains(t, res.Body, "┌─ Total: 0 B")
	assert.Contains(t, res.Body, "└─ In Use: 0 B (0.0%)")
}

func TestMemoryBackendFailure(t *testing.T) {
	src := linuxSources()
	src.VirtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, errBackend }

	res := newTestProber(src).Memory(context.Background(), en)
	assert.False(t, res.OK)
	assert.Equal(t, "Information not available", res.Reason)
}

func TestMemoryLocalized(t *testing.T) {
	res := newTestProber(linuxSources()).Memory(context.Background(), locale.For("it"))
	require.True(t, res.OK)
	assert.Contains(t, res.Body, "┌─ Totale: 16.00 GB")
	assert.Contains(t, res.Body, "└─ In Uso: 8.00 GB (50.0%)")
}
