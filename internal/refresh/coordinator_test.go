package refresh

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monify-labs/hostreport/pkg/models"
)

// gatedBuilder blocks in Build until release is closed.
type gatedBuilder struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
	report  models.Report
}

func newGatedBuilder(report models.Report) *gatedBuilder {
	return &gatedBuilder{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
		report:  report,
	}
}

func (g *gatedBuilder) Build(context.Context) models.Report {
	g.calls.Add(1)
	g.started <- struct{}{}
	<-g.release
	return g.report
}

type instantBuilder struct{ calls atomic.Int32 }

func (b *instantBuilder) Build(context.Context) models.Report {
	b.calls.Add(1)
	report := models.Report{Language: "en"}
	report.Add("OPERATING SYSTEM", "body")
	return report
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// collector records deliveries.
type collector struct {
	mu      sync.Mutex
	reports []models.Report
	ch      chan models.Report
}

func newCollector() *collector {
	return &collector{ch: make(chan models.Report, 8)}
}

func (c *collector) deliver(report models.Report) {
	c.mu.Lock()
	c.reports = append(c.reports, report)
	c.mu.Unlock()
	c.ch <- report
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for builder to start")
	}
}

func TestRequestWhileInFlightIsDropped(t *testing.T) {
	report := models.Report{Language: "en"}
	report.Add("PROCESSOR", "cpu")
	builder := newGatedBuilder(report)
	sink := newCollector()
	c := New(builder, sink.deliver, quietLogger())

	require.True(t, c.Request(context.Background()))
	waitFor(t, builder.started)
	assert.True(t, c.InFlight())

	assert.False(t, c.Request(context.Background()))
	assert.False(t, c.Request(context.Background()))

	close(builder.release)
	c.Wait()

	assert.False(t, c.InFlight())
	assert.Equal(t, 1, sink.count())
	assert.Equal(t, int32(1), builder.calls.Load())
	assert.Equal(t, report, <-sink.ch)

	// Idle again: the next request is accepted and delivered.
	require.True(t, c.Request(context.Background()))
	c.Wait()
	assert.Equal(t, 2, sink.count())
	assert.Equal(t, int32(2), builder.calls.Load())
}

func TestConcurrentRequestsStartOneRefresh(t *testing.T) {
	builder := newGatedBuilder(models.Report{})
	sink := newCollector()
	c := New(builder, sink.deliver, quietLogger())

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Request(context.Background()) {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	close(builder.release)
	c.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, int32(1), builder.calls.Load())
	assert.Equal(t, 1, sink.count())
}

func TestFatalReportIsDelivered(t *testing.T) {
	fatal := models.Report{Language: "en", Fatal: true}
	fatal.Add("CRITICAL ERROR", "panic: boom")
	builder := newGatedBuilder(fatal)
	close(builder.release)

	sink := newCollector()
	c := New(builder, sink.deliver, quietLogger())

	require.True(t, c.Request(context.Background()))
	c.Wait()

	got := <-sink.ch
	assert.True(t, got.Fatal)
	assert.False(t, c.InFlight())
	assert.True(t, c.Request(context.Background()))
	c.Wait()
}

func TestSequentialRequests(t *testing.T) {
	builder := &instantBuilder{}
	sink := newCollector()
	c := New(builder, sink.deliver, quietLogger())

	for i := 0; i < 3; i++ {
		require.True(t, c.Request(context.Background()))
		c.Wait()
	}
	assert.Equal(t, 3, sink.count())
	assert.Equal(t, int32(3), builder.calls.Load())
}
