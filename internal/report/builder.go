// Package report assembles probe results into a localized, ordered Report.
package report

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/monify-labs/hostreport/internal/locale"
	"github.com/monify-labs/hostreport/internal/probe"
	"github.com/monify-labs/hostreport/pkg/models"
)

// ProbeSet supplies the probes in display order.
type ProbeSet interface {
	All() []probe.Probe
}

// LanguageResolver picks the report language.
type LanguageResolver interface {
	Resolve() string
}

// Builder runs the probe set and binds each result to its localized title.
type Builder struct {
	probes   ProbeSet
	resolver LanguageResolver
	parallel bool
	log      logrus.FieldLogger

	hostname func() (string, error)
	now      func() time.Time
}

// New creates a Builder. With parallel set, probes run concurrently; the
// section order of the report is unaffected.
func New(probes ProbeSet, resolver LanguageResolver, parallel bool, log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{
		probes:   probes,
		resolver: resolver,
		parallel: parallel,
		log:      log,
		hostname: os.Hostname,
		now:      time.Now,
	}
}

// Build produces a fresh report. It never panics and never returns an
// empty report: anything that escapes probe-level handling is turned into
// a single section titled with the localized fatal error label.
func (b *Builder) Build(ctx context.Context) (report models.Report) {
	lang := locale.Default

	defer func() {
		if r := recover(); r != nil {
			b.log.WithField("panic", r).Error("Report generation failed")
			report = b.fatalReport(lang, fmt.Sprintf("%v\n\n%s", r, debug.Stack()))
		}
	}()

	lang = b.resolver.Resolve()
	t := locale.For(lang)

	probes := b.probes.All()
	results := b.run(ctx, t, probes)

	report = b.newReport(lang)
	for i, p := range probes {
		text := results[i].Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		report.Add(t.T(p.Title), text)
	}

	if report.Len() == 0 {
		return b.fatalReport(lang, "no report sections were produced")
	}
	return report
}

// run executes the probes and returns results indexed like probes.
func (b *Builder) run(ctx context.Context, t locale.Table, probes []probe.Probe) []probe.Result {
	results := make([]probe.Result, len(probes))

	if !b.parallel {
		for i, p := range probes {
			results[i] = b.runProbe(ctx, t, p)
		}
		return results
	}

	var g errgroup.Group
	for i, p := range probes {
		i, p := i, p
		g.Go(func() error {
			results[i] = b.runProbe(ctx, t, p)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// runProbe isolates one probe: a panic becomes that section's placeholder.
func (b *Builder) runProbe(ctx context.Context, t locale.Table, p probe.Probe) (result probe.Result) {
	log := b.log.WithField("probe", p.Name)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).WithField("stack", string(debug.Stack())).Error("Probe panicked")
			result = probe.Unavailable(t.T(locale.KeyInfoUnavailable))
		}
	}()

	start := time.Now()
	result = p.Run(ctx, t)
	log.WithField("ok", result.OK).WithField("duration", time.Since(start)).Debug("Probe finished")
	return result
}

func (b *Builder) newReport(lang string) models.Report {
	report := models.Report{
		Language:    lang,
		GeneratedAt: b.now(),
	}
	if name, err := b.hostname(); err == nil {
		report.Hostname = name
	}
	return report
}

func (b *Builder) fatalReport(lang, detail string) models.Report {
	report := models.Report{
		Language:    lang,
		GeneratedAt: b.now(),
		Fatal:       true,
	}
	report.Add(locale.Lookup(lang, locale.KeyFatalError), detail)
	return report
}
