package policy

import (
	"github.com/arloliu/peopledao/internal/logging"
	"github.com/arloliu/peopledao/types"
)

// Decider is the decision surface shared by retry policies.
type Decider interface {
	Decide(attempt int, last types.Consistency, kind types.FailureKind) types.Decision
}

// LoggingRetry wraps a retry policy and logs every decision it makes.
type LoggingRetry struct {
	inner  Decider
	logger types.Logger
}

// NewLoggingRetry decorates a retry policy with decision logging.
//
// Retries are logged at Info, give-ups at Warn.
//
// Parameters:
//   - inner: The policy making the decisions
//   - logger: Destination for decision logs; nil discards them
//
// Returns:
//   - *LoggingRetry: A new retry policy
func NewLoggingRetry(inner Decider, logger types.Logger) *LoggingRetry {
	return &LoggingRetry{
		inner:  inner,
		logger: logging.OrNop(logger),
	}
}

// Decide delegates to the wrapped policy and logs the outcome.
func (p *LoggingRetry) Decide(attempt int, last types.Consistency, kind types.FailureKind) types.Decision {
	d := p.inner.Decide(attempt, last, kind)

	if d.Retry {
		p.logger.Info("retrying after failure",
			"attempt", attempt,
			"failure", kind.String(),
			"from", last.String(),
			"to", d.Consistency.String(),
		)
	} else {
		p.logger.Warn("giving up after failure",
			"attempt", attempt,
			"failure", kind.String(),
			"consistency", last.String(),
		)
	}

	return d
}
