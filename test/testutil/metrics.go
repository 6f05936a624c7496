package testutil

import (
	"sync"

	"github.com/arloliu/peopledao/types"
)

// TestMetricsCollector is a test implementation of types.MetricsCollector
// that tracks method calls for assertion in tests.
type TestMetricsCollector struct {
	mu sync.RWMutex

	// Session lifecycle
	ConnectTotal  int64
	ConnectErrors int64

	// Read operations
	ReadAttempts  map[types.Consistency]int64
	ReadErrors    map[types.FailureKind]int64
	ReadRetries   map[string]int64 // key: "from->to"
	ReadExhausted int64
	ReadDuration  []float64

	// Write operations
	WriteTotal    int64
	WriteErrors   map[types.FailureKind]int64
	WriteDuration []float64
}

// Compile-time assertion that TestMetricsCollector implements types.MetricsCollector.
var _ types.MetricsCollector = (*TestMetricsCollector)(nil)

// NewTestMetricsCollector creates a new test metrics collector.
func NewTestMetricsCollector() *TestMetricsCollector {
	return &TestMetricsCollector{
		ReadAttempts: make(map[types.Consistency]int64),
		ReadErrors:   make(map[types.FailureKind]int64),
		ReadRetries:  make(map[string]int64),
		WriteErrors:  make(map[types.FailureKind]int64),
	}
}

// ----------------------
// Session Lifecycle
// ----------------------

// IncConnectTotal records a connect attempt.
func (m *TestMetricsCollector) IncConnectTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConnectTotal++
}

// IncConnectError records a failed connect.
func (m *TestMetricsCollector) IncConnectError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConnectErrors++
}

// ----------------------
// Read Operations
// ----------------------

// IncReadAttempt records a read attempt.
func (m *TestMetricsCollector) IncReadAttempt(c types.Consistency) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadAttempts[c]++
}

// IncReadError records a failed read attempt.
func (m *TestMetricsCollector) IncReadError(kind types.FailureKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadErrors[kind]++
}

// IncReadRetry records a retry decision.
func (m *TestMetricsCollector) IncReadRetry(from, to types.Consistency) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadRetries[from.String()+"->"+to.String()]++
}

// IncReadExhausted records a read that gave up.
func (m *TestMetricsCollector) IncReadExhausted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadExhausted++
}

// ObserveReadDuration records a read attempt duration.
func (m *TestMetricsCollector) ObserveReadDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadDuration = append(m.ReadDuration, seconds)
}

// ----------------------
// Write Operations
// ----------------------

// IncWriteTotal records a write.
func (m *TestMetricsCollector) IncWriteTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteTotal++
}

// IncWriteError records a failed write.
func (m *TestMetricsCollector) IncWriteError(kind types.FailureKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteErrors[kind]++
}

// ObserveWriteDuration records a write duration.
func (m *TestMetricsCollector) ObserveWriteDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteDuration = append(m.WriteDuration, seconds)
}

// ----------------------
// Accessors
// ----------------------

// TotalReadAttempts returns the number of read attempts across all levels.
func (m *TestMetricsCollector) TotalReadAttempts() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, v := range m.ReadAttempts {
		n += v
	}

	return n
}

// ReadAttemptsAt returns the number of read attempts at c.
func (m *TestMetricsCollector) ReadAttemptsAt(c types.Consistency) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.ReadAttempts[c]
}

// WriteErrorsOf returns the number of write failures of kind.
func (m *TestMetricsCollector) WriteErrorsOf(kind types.FailureKind) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.WriteErrors[kind]
}

// RetriesOf returns the number of retries from one level to another.
func (m *TestMetricsCollector) RetriesOf(from, to types.Consistency) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.ReadRetries[from.String()+"->"+to.String()]
}
