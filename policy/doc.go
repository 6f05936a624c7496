// Package policy provides retry policies for the peopledao data-access layer.
//
// A retry policy is a pure function of the failed attempt:
//
//	type RetryPolicy interface {
//	    Decide(attempt int, last types.Consistency, kind types.FailureKind) types.Decision
//	}
//
// Policies hold no per-call state. The read loop allocates a fresh retry
// state for every call and consults the policy after each failed attempt.
//
// Available policies:
//
//   - [DowngradingRetry]: Retries timeouts at ONE, bounded by a retry budget (reads)
//   - [NeverRetry]: Gives up on every failure, turning read retries off
//   - [LoggingRetry]: Decorator that logs every decision of another policy
//
// Example:
//
//	dao, _ := peopledao.NewPersonDAO(dialer, cfg,
//	    peopledao.WithReadRetryPolicy(policy.NewLoggingRetry(
//	        policy.NewDowngradingRetry(3), logger,
//	    )),
//	)
package policy
