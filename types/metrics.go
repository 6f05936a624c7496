package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations should be thread-safe as methods may be called concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/arloliu/peopledao/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	dao, _ := peopledao.NewPersonDAO(dialer, cfg,
//	    peopledao.WithMetrics(collector),
//	)
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Session Lifecycle
	// ----------------------

	// IncConnectTotal increments the connect attempt counter.
	IncConnectTotal()

	// IncConnectError increments the failed connect counter.
	IncConnectError()

	// ----------------------
	// Read Operations
	// ----------------------

	// IncReadAttempt increments the counter of issued read statements.
	// Called once per attempt, including retries.
	IncReadAttempt(consistency Consistency)

	// IncReadError increments the counter of failed read attempts.
	IncReadError(kind FailureKind)

	// IncReadRetry increments the counter of retry decisions.
	IncReadRetry(from, to Consistency)

	// IncReadExhausted increments the counter of reads that gave up.
	IncReadExhausted()

	// ObserveReadDuration records a single read attempt duration in seconds.
	ObserveReadDuration(seconds float64)

	// ----------------------
	// Write Operations
	// ----------------------

	// IncWriteTotal increments the total write operations counter.
	IncWriteTotal()

	// IncWriteError increments the write error counter.
	IncWriteError(kind FailureKind)

	// ObserveWriteDuration records a write operation duration in seconds.
	ObserveWriteDuration(seconds float64)
}
