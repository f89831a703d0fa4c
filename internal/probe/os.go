package probe

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/monify-labs/hostreport/internal/locale"
)

// osNames holds display names that title-casing would get wrong.
var osNames = map[string]string{
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
	"netbsd":  "NetBSD",
	"aix":     "AIX",
}

// OS reports system name, release, version, architecture and host name.
func (p *Prober) OS(ctx context.Context, t locale.Table) Result {
	info, err := p.src.HostInfo(ctx)
	if err != nil {
		p.log.WithError(err).WithField("probe", "os").Debug("Host info query failed")
		return Unavailable(t.T(locale.KeyInfoUnavailable))
	}

	rows := []string{
		field(t, locale.KeyOSLabel, strings.TrimSpace(osDisplayName(info.OS)+" "+info.KernelVersion)),
	}
	if edition, ok := p.edition(); ok {
		rows = append(rows, field(t, locale.KeyEdition, edition))
	}

	version := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	if version == "" {
		version = t.T(locale.KeyNotAvailable)
	}
	rows = append(rows,
		field(t, locale.KeyVersion, version),
		field(t, locale.KeyArchitecture, orNotAvailable(t, info.KernelArch)),
		field(t, locale.KeyComputerName, orNotAvailable(t, p.hostname(info.Hostname))),
	)

	return Success(tree(rows))
}

// edition is best-effort: any failure or an empty value omits the row.
func (p *Prober) edition() (string, bool) {
	if p.src.GOOS != "windows" || p.src.Edition == nil {
		return "", false
	}
	edition, err := p.src.Edition()
	if err != nil {
		p.log.WithError(err).WithField("probe", "os").Debug("Edition lookup failed")
		return "", false
	}
	edition = strings.TrimSpace(edition)
	return edition, edition != ""
}

func (p *Prober) hostname(fromHost string) string {
	if fromHost != "" || p.src.Hostname == nil {
		return fromHost
	}
	name, err := p.src.Hostname()
	if err != nil {
		return ""
	}
	return name
}

func osDisplayName(goos string) string {
	if name, ok := osNames[goos]; ok {
		return name
	}
	return cases.Title(language.English).String(goos)
}

func orNotAvailable(t locale.Table, value string) string {
	if strings.TrimSpace(value) == "" {
		return t.T(locale.KeyNotAvailable)
	}
	return value
}
