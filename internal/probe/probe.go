// Package probe queries one host telemetry category per probe and renders
// it as a localized, tree-formatted section body. Probes never return
// errors: a missing backend becomes an Unavailable result and a missing
// field becomes a placeholder row.
package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monify-labs/hostreport/internal/locale"
)

// Result is the outcome of one probe.
type Result struct {
	OK     bool
	Body   string
	Reason string
}

// Success wraps a rendered section body.
func Success(body string) Result {
	return Result{OK: true, Body: body}
}

// Unavailable reports that the whole category could not be read. The
// reason is a localized placeholder suitable for display.
func Unavailable(reason string) Result {
	return Result{Reason: reason}
}

// Text returns what the section should display.
func (r Result) Text() string {
	if r.OK {
		return r.Body
	}
	return r.Reason
}

// Func is a single probe.
type Func func(ctx context.Context, t locale.Table) Result

// Probe binds a probe to the key of its section title.
type Probe struct {
	Name  string
	Title locale.Key
	Run   Func
}

// Options tunes probe behavior.
type Options struct {
	// CommandTimeout bounds the hardware listing utility.
	CommandTimeout time.Duration
	// LicenseTimeout bounds each license query.
	LicenseTimeout time.Duration
	// MaxDevicesPerCategory caps lines per device category on
	// platforms where devices are scraped from tool output.
	MaxDevicesPerCategory int
	// SkipFilesystems lists filesystem types left out of the storage section.
	SkipFilesystems []string
	// CPUSampleInterval is the window used to measure CPU usage.
	CPUSampleInterval time.Duration
}

// DefaultOptions returns the stock probe tuning.
func DefaultOptions() Options {
	return Options{
		CommandTimeout:        2 * time.Second,
		LicenseTimeout:        5 * time.Second,
		MaxDevicesPerCategory: 3,
		SkipFilesystems:       []string{"squashfs", "overlay", "tmpfs", "devtmpfs", "iso9660"},
		CPUSampleInterval:     100 * time.Millisecond,
	}
}

// Prober runs the probe set against a set of data sources.
type Prober struct {
	src  Sources
	opts Options
	log  logrus.FieldLogger
}

// New creates a Prober. Zero-valued options fall back to DefaultOptions.
func New(src Sources, opts Options, log logrus.FieldLogger) *Prober {
	defaults := DefaultOptions()
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = defaults.CommandTimeout
	}
	if opts.LicenseTimeout <= 0 {
		opts.LicenseTimeout = defaults.LicenseTimeout
	}
	if opts.MaxDevicesPerCategory <= 0 {
		opts.MaxDevicesPerCategory = defaults.MaxDevicesPerCategory
	}
	if opts.SkipFilesystems == nil {
		opts.SkipFilesystems = defaults.SkipFilesystems
	}
	if opts.CPUSampleInterval <= 0 {
		opts.CPUSampleInterval = defaults.CPUSampleInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Prober{src: src, opts: opts, log: log}
}

// All returns the probe set in display order.
func (p *Prober) All() []Probe {
	return []Probe{
		{Name: "os", Title: locale.KeyOS, Run: p.OS},
		{Name: "cpu", Title: locale.KeyCPU, Run: p.CPU},
		{Name: "memory", Title: locale.KeyMemory, Run: p.Memory},
		{Name: "storage", Title: locale.KeyDisks, Run: p.Storage},
		{Name: "devices", Title: locale.KeyDevices, Run: p.Devices},
		{Name: "license", Title: locale.KeyLicense, Run: p.License},
	}
}

// tree joins rows with box-drawing prefixes: ┌─ for the first row, ├─ for
// the middle ones and └─ for the last. A single row gets └─.
func tree(rows []string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		prefix := "├─"
		switch {
		case i == len(rows)-1:
			prefix = "└─"
		case i == 0:
			prefix = "┌─"
		}
		lines[i] = prefix + " " + row
	}
	return strings.Join(lines, "\n")
}

// field renders a "Label: value" row.
func field(t locale.Table, key locale.Key, value any) string {
	return fmt.Sprintf("%s: %v", t.T(key), value)
}
