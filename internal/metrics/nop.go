// Package metrics provides internal metrics utilities for peopledao.
package metrics

import "github.com/arloliu/peopledao/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is configured,
// avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// ----------------------
// Session Lifecycle
// ----------------------

// IncConnectTotal discards the metric.
func (m *NopMetrics) IncConnectTotal() {}

// IncConnectError discards the metric.
func (m *NopMetrics) IncConnectError() {}

// ----------------------
// Read Operations
// ----------------------

// IncReadAttempt discards the metric.
func (m *NopMetrics) IncReadAttempt(_ types.Consistency) {}

// IncReadError discards the metric.
func (m *NopMetrics) IncReadError(_ types.FailureKind) {}

// IncReadRetry discards the metric.
func (m *NopMetrics) IncReadRetry(_, _ types.Consistency) {}

// IncReadExhausted discards the metric.
func (m *NopMetrics) IncReadExhausted() {}

// ObserveReadDuration discards the metric.
func (m *NopMetrics) ObserveReadDuration(_ float64) {}

// ----------------------
// Write Operations
// ----------------------

// IncWriteTotal discards the metric.
func (m *NopMetrics) IncWriteTotal() {}

// IncWriteError discards the metric.
func (m *NopMetrics) IncWriteError(_ types.FailureKind) {}

// ObserveWriteDuration discards the metric.
func (m *NopMetrics) ObserveWriteDuration(_ float64) {}
