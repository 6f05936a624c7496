package peopledao

import (
	"context"
	"errors"

	"github.com/arloliu/peopledao/types"
)

// translateFailure normalizes an execution failure into the session error
// kinds: *types.TimeoutError, *types.UnavailableError or *types.TransportError.
//
// A context error is reported as-is when the caller's own context is done,
// and as a TimeoutError when only the per-request deadline expired.
// Anything unrecognised becomes a TransportError.
func translateFailure(callerCtx context.Context, err error, c types.Consistency) error {
	if err == nil {
		return nil
	}

	if cerr := callerCtx.Err(); cerr != nil {
		return cerr
	}

	var (
		timeout     *types.TimeoutError
		unavailable *types.UnavailableError
		transport   *types.TransportError
	)

	switch {
	case errors.As(err, &timeout), errors.As(err, &unavailable), errors.As(err, &transport):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return &types.TimeoutError{Consistency: c, Cause: err}
	default:
		return &types.TransportError{Cause: err}
	}
}

// failureKind classifies a translated failure for the retry policy.
func failureKind(err error) types.FailureKind {
	var (
		timeout     *types.TimeoutError
		unavailable *types.UnavailableError
	)

	switch {
	case errors.As(err, &timeout):
		return types.FailureTimeout
	case errors.As(err, &unavailable):
		return types.FailureUnavailable
	default:
		return types.FailureTransport
	}
}

// isLifecycleError reports failures raised before any statement was issued.
func isLifecycleError(err error) bool {
	return errors.Is(err, types.ErrNotConnected) || errors.Is(err, types.ErrStaleStatement)
}
