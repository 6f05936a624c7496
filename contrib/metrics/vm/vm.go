package vm

import (
	"fmt"
	"io"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/peopledao/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "peopledao"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// readLevels are the consistency levels with pre-created attempt counters.
var readLevels = []types.Consistency{
	types.Any, types.One, types.Two, types.Three, types.Quorum, types.All,
	types.LocalQuorum, types.EachQuorum, types.Serial, types.LocalSerial, types.LocalOne,
}

var failureKinds = []types.FailureKind{
	types.FailureTransport, types.FailureTimeout, types.FailureUnavailable,
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// Per-level and per-kind counters are pre-created at initialization time.
// Retry transitions are created on first use. Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	// Session metrics
	connectTotal  *metrics.Counter
	connectErrors *metrics.Counter

	// Read metrics
	readAttempts  map[types.Consistency]*metrics.Counter
	readErrors    map[types.FailureKind]*metrics.Counter
	readExhausted *metrics.Counter
	readDuration  *metrics.Histogram

	// Write metrics
	writeTotal    *metrics.Counter
	writeErrors   map[types.FailureKind]*metrics.Counter
	writeDuration *metrics.Histogram
}

var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally
// unless WithMetricsSet is given.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	dao, _ := peopledao.NewPersonDAO(dialer, cfg,
//	    peopledao.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "peopledao",
	}

	for _, opt := range opts {
		opt(c)
	}

	// A caller-provided set is managed by the caller.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	c.connectTotal = c.set.NewCounter(p + "_connect_total")
	c.connectErrors = c.set.NewCounter(p + "_connect_errors_total")

	c.readAttempts = make(map[types.Consistency]*metrics.Counter, len(readLevels))
	for _, level := range readLevels {
		c.readAttempts[level] = c.set.NewCounter(fmt.Sprintf(`%s_read_attempts_total{consistency="%s"}`, p, level))
	}

	c.readErrors = make(map[types.FailureKind]*metrics.Counter, len(failureKinds))
	c.writeErrors = make(map[types.FailureKind]*metrics.Counter, len(failureKinds))
	for _, kind := range failureKinds {
		c.readErrors[kind] = c.set.NewCounter(fmt.Sprintf(`%s_read_errors_total{kind="%s"}`, p, kind))
		c.writeErrors[kind] = c.set.NewCounter(fmt.Sprintf(`%s_write_errors_total{kind="%s"}`, p, kind))
	}

	c.readExhausted = c.set.NewCounter(p + "_read_exhausted_total")
	c.readDuration = c.set.NewHistogram(p + "_read_duration_seconds")

	c.writeTotal = c.set.NewCounter(p + "_write_total")
	c.writeDuration = c.set.NewHistogram(p + "_write_duration_seconds")
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Session Lifecycle
// ----------------------

// IncConnectTotal increments the connect attempt counter.
func (c *Collector) IncConnectTotal() {
	c.connectTotal.Inc()
}

// IncConnectError increments the failed connect counter.
func (c *Collector) IncConnectError() {
	c.connectErrors.Inc()
}

// ----------------------
// Read Operations
// ----------------------

// IncReadAttempt increments the issued read counter of the given level.
func (c *Collector) IncReadAttempt(consistency types.Consistency) {
	if counter, ok := c.readAttempts[consistency]; ok {
		counter.Inc()
		return
	}
	c.set.GetOrCreateCounter(fmt.Sprintf(`%s_read_attempts_total{consistency="%s"}`, c.prefix, consistency)).Inc()
}

// IncReadError increments the failed read attempt counter of the given kind.
func (c *Collector) IncReadError(kind types.FailureKind) {
	if counter, ok := c.readErrors[kind]; ok {
		counter.Inc()
	}
}

// IncReadRetry increments the retry counter of a consistency transition.
func (c *Collector) IncReadRetry(from, to types.Consistency) {
	c.set.GetOrCreateCounter(fmt.Sprintf(`%s_read_retries_total{from="%s",to="%s"}`, c.prefix, from, to)).Inc()
}

// IncReadExhausted increments the counter of reads that gave up.
func (c *Collector) IncReadExhausted() {
	c.readExhausted.Inc()
}

// ObserveReadDuration records a read attempt duration.
func (c *Collector) ObserveReadDuration(seconds float64) {
	c.readDuration.Update(seconds)
}

// ----------------------
// Write Operations
// ----------------------

// IncWriteTotal increments the write counter.
func (c *Collector) IncWriteTotal() {
	c.writeTotal.Inc()
}

// IncWriteError increments the write error counter of the given kind.
func (c *Collector) IncWriteError(kind types.FailureKind) {
	if counter, ok := c.writeErrors[kind]; ok {
		counter.Inc()
	}
}

// ObserveWriteDuration records a write duration.
func (c *Collector) ObserveWriteDuration(seconds float64) {
	c.writeDuration.Update(seconds)
}
