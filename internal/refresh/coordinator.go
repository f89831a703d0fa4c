// Package refresh runs report generation off the caller's goroutine and
// hands each finished report to a consumer, one refresh at a time.
package refresh

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/monify-labs/hostreport/pkg/models"
)

// ReportBuilder produces a report. Implementations must not panic.
type ReportBuilder interface {
	Build(ctx context.Context) models.Report
}

// DeliverFunc receives a finished report. It runs on the producer
// goroutine, so it should hand the report off rather than render it.
type DeliverFunc func(models.Report)

// Coordinator enforces at most one in-flight refresh. Requests made while
// a refresh is running are dropped, not queued.
type Coordinator struct {
	builder ReportBuilder
	deliver DeliverFunc
	log     logrus.FieldLogger

	inFlight atomic.Bool
	wg       sync.WaitGroup
}

// New creates a Coordinator that delivers every report to deliver.
func New(builder ReportBuilder, deliver DeliverFunc, log logrus.FieldLogger) *Coordinator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Coordinator{
		builder: builder,
		deliver: deliver,
		log:     log,
	}
}

// Request starts a refresh and reports whether it was accepted. It
// returns false without side effects if a refresh is already running.
func (c *Coordinator) Request(ctx context.Context) bool {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.log.Debug("Refresh already in progress, request dropped")
		return false
	}

	c.wg.Add(1)
	go c.run(ctx)
	return true
}

// InFlight reports whether a refresh is running.
func (c *Coordinator) InFlight() bool {
	return c.inFlight.Load()
}

// Wait blocks until the running refresh, if any, has delivered its report.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) run(ctx context.Context) {
	defer c.wg.Done()
	defer c.inFlight.Store(false)

	report := c.builder.Build(ctx)
	c.log.WithField("sections", report.Len()).WithField("fatal", report.Fatal).Debug("Refresh complete")
	c.deliver(report)
}
