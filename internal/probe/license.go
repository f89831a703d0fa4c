package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/monify-labs/hostreport/internal/locale"
)

// windowsApplicationID is the SoftwareLicensingProduct application ID of
// Windows itself.
const windowsApplicationID = "55c92734-d682-4d71-983e-d6ec3f16059f"

var (
	productKeyQuery    = []string{"path", "softwarelicensingservice", "get", "OA3xOriginalProductKey"}
	licenseStatusQuery = []string{"path", "SoftwareLicensingProduct", "where",
		fmt.Sprintf("ApplicationID=%q", windowsApplicationID), "get", "LicenseStatus"}
)

// License reports the Windows product key and activation status. It does
// not check that the key is genuine. Other platforms get a fixed "not
// applicable" line without running anything.
func (p *Prober) License(ctx context.Context, t locale.Table) Result {
	if p.src.GOOS != "windows" {
		return Success(tree([]string{t.T(locale.KeyLicenseNotApplicable)}))
	}

	key, err := p.wmicValue(ctx, productKeyQuery)
	if err != nil {
		p.log.WithError(err).WithField("probe", "license").Debug("Product key query failed")
		return Unavailable(tree([]string{t.T(locale.KeyLicenseError)}))
	}

	status, err := p.wmicValue(ctx, licenseStatusQuery)
	if err != nil {
		p.log.WithError(err).WithField("probe", "license").Debug("License status query failed")
		return Unavailable(tree([]string{t.T(locale.KeyLicenseError)}))
	}

	if key == "" {
		key = t.T(locale.KeyLicenseUnknown)
	}

	return Success(tree([]string{
		field(t, locale.KeyLicenseKey, key),
		field(t, locale.KeyLicenseStatus, licenseStatusText(t, status)),
	}))
}

// wmicValue runs one wmic query under the license timeout and returns the
// first value below the header row.
func (p *Prober) wmicValue(ctx context.Context, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.LicenseTimeout)
	defer cancel()

	out, err := p.src.Run(ctx, "wmic", args...)
	if err != nil {
		return "", fmt.Errorf("wmic %s: %w", strings.Join(args, " "), err)
	}
	return firstValue(string(out)), nil
}

// firstValue skips the column header of wmic table output and returns the
// next non-blank line. wmic terminates lines with "\r\r\n".
func firstValue(output string) string {
	seenHeader := false
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !seenHeader {
			seenHeader = true
			continue
		}
		return line
	}
	return ""
}

func licenseStatusText(t locale.Table, status string) string {
	switch status {
	case "1":
		return t.T(locale.KeyLicensed)
	case "0":
		return t.T(locale.KeyUnlicensed)
	default:
		return t.T(locale.KeyLicenseUnknown)
	}
}
