package peopledao

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/peopledao/types"
)

// ExecuteWrite runs a write exactly once at the configured write consistency.
//
// Writes are never retried.
//
// Parameters:
//   - ctx: Context for cancellation
//   - op: Logical operation name used in errors, logs and events
//   - stmt: Statement to run
//
// Returns:
//   - error: *types.UnableToStoreError wrapping the failure, or
//     types.ErrNotConnected / types.ErrStaleStatement
func (m *SessionManager) ExecuteWrite(ctx context.Context, op string, stmt Statement) error {
	if err := ctx.Err(); err != nil {
		return &types.UnableToStoreError{Operation: op, Cause: err}
	}

	callID := uuid.NewString()
	c := m.cfg.WriteConsistency

	start := time.Now()
	_, err := m.Execute(ctx, stmt, c)
	elapsed := time.Since(start)

	if err != nil && isLifecycleError(err) {
		return err
	}

	m.opts.Metrics.IncWriteTotal()
	m.opts.Metrics.ObserveWriteDuration(elapsed.Seconds())
	m.observe(AttemptEvent{
		CallID:      callID,
		Operation:   op,
		Kind:        OperationWrite,
		Consistency: c,
		Duration:    elapsed,
		Err:         err,
	})

	if err != nil {
		kind := failureKind(err)
		m.opts.Metrics.IncWriteError(kind)
		m.opts.Logger.Warn("write failed",
			"call", callID,
			"operation", op,
			"consistency", c.String(),
			"failure", kind.String(),
			"error", err.Error(),
		)

		return &types.UnableToStoreError{Operation: op, Cause: err}
	}

	m.opts.Logger.Debug("write succeeded",
		"call", callID,
		"operation", op,
		"consistency", c.String(),
	)

	return nil
}
