package peopledao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/peopledao/adapter/cql"
	"github.com/arloliu/peopledao/types"
)

// RetryState is the per-call state of the read loop.
//
// A fresh RetryState is allocated for every ExecuteRead call and never
// leaves it.
type RetryState struct {
	// Attempt is the zero-based index of the next attempt.
	Attempt int

	// Consistency is the level of the next attempt.
	Consistency types.Consistency
}

// ExecuteRead runs a read through the retry loop.
//
// The first attempt is issued at the configured read consistency. After a
// failure the read retry policy either re-issues the statement at the level
// it chooses or ends the call. Every attempt is reported to metrics, to the
// attempt observer and to the debug log.
//
// The caller's context is checked between attempts, never mid-flight. An
// attempt runs to completion under the per-request timeout even if the
// caller cancels meanwhile; its rows are still returned on success, and a
// failed attempt ends the loop with the attempt's failure joined to the
// context error.
//
// Parameters:
//   - ctx: Context for cancellation
//   - op: Logical operation name used in errors, logs and events
//   - stmt: Statement to run
//
// Returns:
//   - *cql.Rows: The result of the first successful attempt
//   - error: *types.UnableToRetrieveError carrying the last failure, or
//     types.ErrNotConnected / types.ErrStaleStatement
func (m *SessionManager) ExecuteRead(ctx context.Context, op string, stmt Statement) (*cql.Rows, error) {
	callID := uuid.NewString()
	state := &RetryState{Consistency: m.cfg.ReadConsistency}

	for {
		if err := ctx.Err(); err != nil {
			return nil, m.readExhausted(callID, op, state.Attempt, err)
		}

		start := time.Now()
		rows, err := m.Execute(context.WithoutCancel(ctx), stmt, state.Consistency)
		elapsed := time.Since(start)

		if err != nil && isLifecycleError(err) {
			return nil, err
		}

		m.opts.Metrics.IncReadAttempt(state.Consistency)
		m.opts.Metrics.ObserveReadDuration(elapsed.Seconds())
		m.observe(AttemptEvent{
			CallID:      callID,
			Operation:   op,
			Kind:        OperationRead,
			Attempt:     state.Attempt,
			Consistency: state.Consistency,
			Duration:    elapsed,
			Err:         err,
		})

		if err == nil {
			m.opts.Logger.Debug("read succeeded",
				"call", callID,
				"operation", op,
				"attempt", state.Attempt,
				"consistency", state.Consistency.String(),
				"rows", rows.Len(),
			)

			return rows, nil
		}

		kind := failureKind(err)
		m.opts.Metrics.IncReadError(kind)
		m.opts.Logger.Debug("read attempt failed",
			"call", callID,
			"operation", op,
			"attempt", state.Attempt,
			"consistency", state.Consistency.String(),
			"failure", kind.String(),
			"error", err.Error(),
		)

		if cerr := ctx.Err(); cerr != nil {
			return nil, m.readExhausted(callID, op, state.Attempt+1, errors.Join(err, cerr))
		}

		d := m.opts.ReadRetryPolicy.Decide(state.Attempt, state.Consistency, kind)
		if !d.Retry {
			return nil, m.readExhausted(callID, op, state.Attempt+1, err)
		}

		m.opts.Metrics.IncReadRetry(state.Consistency, d.Consistency)
		state.Attempt++
		state.Consistency = d.Consistency
	}
}

func (m *SessionManager) readExhausted(callID, op string, attempts int, cause error) error {
	m.opts.Metrics.IncReadExhausted()
	m.opts.Logger.Warn("read failed",
		"call", callID,
		"operation", op,
		"attempts", attempts,
		"error", cause.Error(),
	)

	return &types.UnableToRetrieveError{Operation: op, Attempts: attempts, Cause: cause}
}

func (m *SessionManager) observe(ev AttemptEvent) {
	if m.opts.AttemptObserver != nil {
		m.opts.AttemptObserver.ObserveAttempt(ev)
	}
}
