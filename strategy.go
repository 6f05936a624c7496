package peopledao

import (
	"time"

	"github.com/arloliu/peopledao/types"
)

// MetricsCollector is re-exported from types for convenience.
type MetricsCollector = types.MetricsCollector

// RetryPolicy decides whether a failed read attempt is re-issued.
//
// Implementations MUST be safe for concurrent use and MUST NOT keep
// per-call state: every call to Decide must depend only on its arguments.
// The read loop owns the per-call RetryState.
type RetryPolicy interface {
	// Decide evaluates a failed attempt.
	//
	// Parameters:
	//   - attempt: Zero-based index of the attempt that failed
	//   - last: Consistency the failed attempt was issued at
	//   - kind: Classification of the failure
	//
	// Returns:
	//   - types.Decision: Retry at a consistency level, or give up
	Decide(attempt int, last types.Consistency, kind types.FailureKind) types.Decision
}

// OperationKind distinguishes reads from writes in attempt events.
type OperationKind string

// Operation kinds.
const (
	OperationRead  OperationKind = "read"
	OperationWrite OperationKind = "write"
)

// AttemptEvent describes one issued statement.
type AttemptEvent struct {
	// CallID correlates all attempts of one DAO call.
	CallID string

	// Operation is the logical operation name, e.g. "retrieveAllPeople".
	Operation string

	// Kind is OperationRead or OperationWrite.
	Kind OperationKind

	// Attempt is the zero-based attempt index within the call.
	Attempt int

	// Consistency is the level the statement was issued at.
	Consistency types.Consistency

	// Duration is the time spent in the transport.
	Duration time.Duration

	// Err is the translated failure, or nil.
	Err error
}

// AttemptObserver is notified after every issued statement.
//
// Implementations MUST be safe for concurrent use and should return quickly:
// ObserveAttempt runs on the calling goroutine between attempts.
type AttemptObserver interface {
	ObserveAttempt(ev AttemptEvent)
}

// AttemptObserverFunc adapts a function to the AttemptObserver interface.
type AttemptObserverFunc func(ev AttemptEvent)

// ObserveAttempt calls f(ev).
func (f AttemptObserverFunc) ObserveAttempt(ev AttemptEvent) {
	f(ev)
}
