package peopledao

import (
	"fmt"
	"time"

	"github.com/arloliu/peopledao/internal/logging"
	"github.com/arloliu/peopledao/internal/metrics"
	"github.com/arloliu/peopledao/policy"
	"github.com/arloliu/peopledao/types"
)

// Connection setting defaults.
const (
	DefaultHost             = "localhost"
	DefaultPort             = 9042
	DefaultNamespace        = "people"
	DefaultRetryBudget      = 1
	DefaultRequestTimeout   = 500 * time.Millisecond
	DefaultConnectTimeout   = 5 * time.Second
	DefaultReadConsistency  = types.Quorum
	DefaultWriteConsistency = types.One
)

// Config holds the connection settings of a session manager.
type Config struct {
	// Host and Port identify the contact point.
	Host string
	Port int

	// Namespace is the keyspace selected on connect.
	Namespace string

	// RetryBudget is the number of read retries allowed beyond the first
	// attempt. Only used when no read retry policy is supplied.
	RetryBudget int

	// RequestTimeout bounds every statement execution.
	RequestTimeout time.Duration

	// ConnectTimeout bounds the initial connection handshake.
	ConnectTimeout time.Duration

	// ReadConsistency is the baseline level of every read.
	ReadConsistency types.Consistency

	// WriteConsistency is the level of every write.
	WriteConsistency types.Consistency
}

// DefaultConfig returns a Config with sensible defaults.
//
// Defaults:
//   - Host: localhost, Port: 9042, Namespace: people
//   - RetryBudget: 1
//   - RequestTimeout: 500ms, ConnectTimeout: 5s
//   - ReadConsistency: QUORUM, WriteConsistency: ONE
//
// Returns:
//   - Config: Configuration with default settings
func DefaultConfig() Config {
	return Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		Namespace:        DefaultNamespace,
		RetryBudget:      DefaultRetryBudget,
		RequestTimeout:   DefaultRequestTimeout,
		ConnectTimeout:   DefaultConnectTimeout,
		ReadConsistency:  DefaultReadConsistency,
		WriteConsistency: DefaultWriteConsistency,
	}
}

// Validate checks the settings.
//
// Returns:
//   - error: An error wrapping types.ErrInvalidConfig, or nil
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("%w: host is empty", types.ErrInvalidConfig)
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", types.ErrInvalidConfig, c.Port)
	case c.Namespace == "":
		return fmt.Errorf("%w: namespace is empty", types.ErrInvalidConfig)
	case c.RetryBudget < 0:
		return fmt.Errorf("%w: retry budget %d is negative", types.ErrInvalidConfig, c.RetryBudget)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive", types.ErrInvalidConfig)
	case c.ConnectTimeout < 0:
		return fmt.Errorf("%w: connect timeout is negative", types.ErrInvalidConfig)
	}

	return nil
}

// Options holds the collaborators of a session manager.
type Options struct {
	ReadRetryPolicy    RetryPolicy
	AttemptObserver    AttemptObserver
	Metrics            MetricsCollector
	Logger             types.Logger
	SerializeExecution bool
}

func defaultOptions(cfg Config) *Options {
	return &Options{
		ReadRetryPolicy: policy.NewDowngradingRetry(cfg.RetryBudget),
		Metrics:         metrics.NewNopMetrics(),
		Logger:          logging.NewNopLogger(),
	}
}

// Option configures Options.
type Option func(*Options)

// WithReadRetryPolicy sets the policy consulted after every failed read attempt.
//
// If not set, policy.NewDowngradingRetry(cfg.RetryBudget) is used.
//
// Parameters:
//   - p: The retry policy (e.g., policy.NewLoggingRetry(policy.NewDowngradingRetry(3), logger))
//
// Returns:
//   - Option: Configuration option
func WithReadRetryPolicy(p RetryPolicy) Option {
	return func(o *Options) {
		o.ReadRetryPolicy = p
	}
}

// WithAttemptObserver registers an observer notified after every issued
// statement, including each retry.
//
// Parameters:
//   - observer: The observer implementation
//
// Returns:
//   - Option: Configuration option
func WithAttemptObserver(observer AttemptObserver) Option {
	return func(o *Options) {
		o.AttemptObserver = observer
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used that discards all metrics.
// Use contrib/metrics/vm.New() for VictoriaMetrics integration.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	import vmmetrics "github.com/arloliu/peopledao/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	dao, _ := peopledao.NewPersonDAO(dialer, cfg,
//	    peopledao.WithMetrics(collector),
//	)
func WithMetrics(collector MetricsCollector) Option {
	return func(o *Options) {
		o.Metrics = collector
	}
}

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// Use contrib/logging/zerolog.New() for zerolog integration.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSerializedExecution serializes statement execution through the session.
//
// Only needed for transports that are not safe for concurrent use. The
// gocql adapter is, so this is off by default.
//
// Returns:
//   - Option: Configuration option
func WithSerializedExecution() Option {
	return func(o *Options) {
		o.SerializeExecution = true
	}
}
