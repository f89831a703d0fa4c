package probe

import (
	"context"
	"strings"

	"github.com/monify-labs/hostreport/internal/locale"
)

const (
	deviceHeaderIndent = "  ▸ "
	deviceIndent       = "     "
)

// deviceCategory is a subsection of the devices section. On platforms
// without WMI, lines of the listing tool are assigned to the first
// category whose keywords they contain. The keyword lists and the per
// category cap are a best-effort policy: tool output differs across
// versions and locales.
type deviceCategory struct {
	title    locale.Key
	keywords []string
}

var deviceCategories = []deviceCategory{
	{title: locale.KeyGraphics, keywords: []string{"VGA", "Display", "3D"}},
	{title: locale.KeyAudio, keywords: []string{"Audio"}},
	{title: locale.KeyNetwork, keywords: []string{"Network", "Ethernet"}},
}

// deviceGroup is one rendered category: a header and its entry lines.
type deviceGroup struct {
	title locale.Key
	lines []string
}

// Devices lists graphics, audio and network devices. Windows hosts are
// queried over WMI; other hosts scrape lspci.
func (p *Prober) Devices(ctx context.Context, t locale.Table) Result {
	var groups []deviceGroup
	var lines []string

	if p.src.GOOS == "windows" {
		ok := false
		if p.src.WMI != nil {
			groups, ok = p.wmiDevices(t)
		}
		if !ok {
			lines = []string{t.T(locale.KeyWMINotInstalled)}
		}
	} else {
		groups = p.lspciDevices(ctx)
	}

	if lines == nil {
		lines = renderDeviceGroups(t, groups)
	}
	if len(lines) == 0 {
		return Unavailable(t.T(locale.KeyDriversUnavailable))
	}
	return Success(strings.Join(lines, "\n"))
}

// renderDeviceGroups renders each group as a header plus its lines, with a
// blank line between groups.
func renderDeviceGroups(t locale.Table, groups []deviceGroup) []string {
	var lines []string
	for i, group := range groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, deviceHeaderIndent+t.T(group.title)+":")
		lines = append(lines, group.lines...)
	}
	return lines
}

// lspciDevices runs lspci and sorts its lines into categories. A missing
// tool, a failed run or a timeout yields no groups.
func (p *Prober) lspciDevices(ctx context.Context) []deviceGroup {
	ctx, cancel := context.WithTimeout(ctx, p.opts.CommandTimeout)
	defer cancel()

	out, err := p.src.Run(ctx, "lspci")
	if err != nil {
		p.log.WithError(err).WithField("probe", "devices").Debug("lspci failed")
		return nil
	}

	return categorizeDevices(string(out), p.opts.MaxDevicesPerCategory)
}

// categorizeDevices assigns each output line to at most one category and
// keeps the first limit entries of each.
func categorizeDevices(output string, limit int) []deviceGroup {
	entries := make([][]string, len(deviceCategories))

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for i, category := range deviceCategories {
			if !containsAny(line, category.keywords) {
				continue
			}
			if len(entries[i]) < limit {
				entries[i] = append(entries[i], deviceIndent+"├─ "+deviceName(line))
			}
			break
		}
	}

	var groups []deviceGroup
	for i, category := range deviceCategories {
		if len(entries[i]) == 0 {
			continue
		}
		groups = append(groups, deviceGroup{title: category.title, lines: entries[i]})
	}
	return groups
}

// deviceName returns the text after the last ": " of an lspci line, e.g.
// "00:02.0 VGA compatible controller: Intel Corporation UHD Graphics 620"
// yields "Intel Corporation UHD Graphics 620".
func deviceName(line string) string {
	if i := strings.LastIndex(line, ": "); i >= 0 {
		return strings.TrimSpace(line[i+2:])
	}
	return line
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
