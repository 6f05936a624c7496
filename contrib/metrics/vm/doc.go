// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "peopledao":
//
//	collector := vm.New()
//	dao, _ := peopledao.NewPersonDAO(dialer, cfg,
//	    peopledao.WithMetrics(collector),
//	)
//
// # Custom Prefix
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// # Exposing Metrics
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer.
//
// # Metrics Provided
//
// Session:
//   - {prefix}_connect_total - Counter of connect calls
//   - {prefix}_connect_errors_total - Counter of failed connects
//
// Reads:
//   - {prefix}_read_attempts_total{consistency} - Counter of issued read statements, retries included
//   - {prefix}_read_errors_total{kind} - Counter of failed attempts by failure kind
//   - {prefix}_read_retries_total{from,to} - Counter of retry decisions
//   - {prefix}_read_exhausted_total - Counter of reads that gave up
//   - {prefix}_read_duration_seconds - Histogram of attempt latencies
//
// Writes:
//   - {prefix}_write_total - Counter of writes
//   - {prefix}_write_errors_total{kind} - Counter of failed writes by failure kind
//   - {prefix}_write_duration_seconds - Histogram of write latencies
package vm
