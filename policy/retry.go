// Package policy provides retry policies for peopledao read and write operations.
package policy

import (
	"github.com/arloliu/peopledao/types"
)

// DowngradingRetry retries timed-out reads at the lowest consistency level.
//
// The first retry always drops to types.LowestRead regardless of the level
// the failed attempt used; later retries stay there. A first timeout is
// taken as a sign of replica overload, so the policy trades consistency for
// availability immediately instead of stepping down one level at a time.
//
// Only timeouts are retried. Unavailable and transport failures give up.
//
// DowngradingRetry holds no mutable state and is safe for concurrent use.
type DowngradingRetry struct {
	budget int
}

// NewDowngradingRetry creates a downgrading retry policy.
//
// Parameters:
//   - budget: Number of retries allowed beyond the first attempt; negative values are treated as 0
//
// Returns:
//   - *DowngradingRetry: A new retry policy
func NewDowngradingRetry(budget int) *DowngradingRetry {
	if budget < 0 {
		budget = 0
	}

	return &DowngradingRetry{budget: budget}
}

// Budget returns the number of retries allowed beyond the first attempt.
func (p *DowngradingRetry) Budget() int {
	return p.budget
}

// Decide evaluates a failed attempt.
//
// Parameters:
//   - attempt: Zero-based index of the attempt that failed
//   - last: Consistency the failed attempt was issued at
//   - kind: Classification of the failure
//
// Returns:
//   - types.Decision: Retry at types.LowestRead, or give up
func (p *DowngradingRetry) Decide(attempt int, _ types.Consistency, kind types.FailureKind) types.Decision {
	if kind != types.FailureTimeout || attempt >= p.budget {
		return types.GiveUp()
	}

	return types.RetryAt(types.LowestRead)
}

// NeverRetry gives up on every failure.
//
// Install it with peopledao.WithReadRetryPolicy to issue every read once.
type NeverRetry struct{}

// NewNeverRetry creates a policy that never retries.
//
// Returns:
//   - *NeverRetry: A new retry policy
func NewNeverRetry() *NeverRetry {
	return &NeverRetry{}
}

// Decide always gives up.
func (p *NeverRetry) Decide(_ int, _ types.Consistency, _ types.FailureKind) types.Decision {
	return types.GiveUp()
}
