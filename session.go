package peopledao

import (
	"context"
	"fmt"
	"sync"

	"github.com/arloliu/peopledao/adapter/cql"
	"github.com/arloliu/peopledao/internal/logging"
	"github.com/arloliu/peopledao/internal/metrics"
	"github.com/arloliu/peopledao/policy"
	"github.com/arloliu/peopledao/types"
)

// namespaceConsistency is the level of the keyspace selection issued on connect.
const namespaceConsistency = types.One

type registration struct {
	name     string
	template string
}

// sessionHandle is the state of one connected session.
type sessionHandle struct {
	session    cql.Session
	generation uint64
	statements *StatementCache
}

// SessionManager owns the datastore session and its prepared statements.
//
// Statement execution borrows the session under a read lock, so Connect and
// Disconnect wait for in-flight statements. Per-call retry state is never
// stored on the manager.
type SessionManager struct {
	dialer cql.Dialer
	cfg    Config
	opts   *Options

	mu         sync.RWMutex
	handle     *sessionHandle
	generation uint64
	templates  []registration

	// execMu serializes execution when Options.SerializeExecution is set.
	execMu sync.Mutex
}

// NewSessionManager creates a disconnected session manager.
//
// Parameters:
//   - dialer: Transport used to open sessions
//   - cfg: Connection settings
//   - opts: Optional collaborators (logger, metrics, retry policy, observer)
//
// Returns:
//   - *SessionManager: A new session manager
//   - error: types.ErrNilDialer or an invalid config error
func NewSessionManager(dialer cql.Dialer, cfg Config, opts ...Option) (*SessionManager, error) {
	if dialer == nil {
		return nil, types.ErrNilDialer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions(cfg)
	for _, opt := range opts {
		opt(o)
	}
	o.Logger = logging.OrNop(o.Logger)
	if o.Metrics == nil {
		o.Metrics = metrics.NewNopMetrics()
	}
	if o.ReadRetryPolicy == nil {
		o.ReadRetryPolicy = policy.NewDowngradingRetry(cfg.RetryBudget)
	}

	return &SessionManager{
		dialer: dialer,
		cfg:    cfg,
		opts:   o,
	}, nil
}

// Config returns the connection settings.
func (m *SessionManager) Config() Config {
	return m.cfg
}

// Register adds a statement template to prepare on every Connect.
//
// Parameters:
//   - name: Logical operation name
//   - template: CQL statement with ? placeholders
//
// Returns:
//   - error: types.ErrAlreadyConnected if called while connected
func (m *SessionManager) Register(name, template string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil {
		return types.ErrAlreadyConnected
	}

	for i := range m.templates {
		if m.templates[i].name == name {
			m.templates[i].template = template
			return nil
		}
	}
	m.templates = append(m.templates, registration{name: name, template: template})

	return nil
}

// Connect opens a session, selects the namespace at consistency ONE and
// prepares every registered template.
//
// Connecting while connected releases the previous session first; its
// prepared statements become stale.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - error: *types.ConnectionError or *types.PrepareError
func (m *SessionManager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.opts.Metrics.IncConnectTotal()

	if m.handle != nil {
		m.releaseLocked()
	}

	session, err := m.dialer.Open(ctx, cql.Endpoint{
		Host:           m.cfg.Host,
		Port:           m.cfg.Port,
		RequestTimeout: m.cfg.RequestTimeout,
		ConnectTimeout: m.cfg.ConnectTimeout,
	})
	if err != nil {
		return m.connectFailed(&types.ConnectionError{Host: m.cfg.Host, Port: m.cfg.Port, Cause: err})
	}

	if err := session.SelectNamespace(ctx, m.cfg.Namespace, namespaceConsistency); err != nil {
		session.Close()
		return m.connectFailed(&types.ConnectionError{
			Host:  m.cfg.Host,
			Port:  m.cfg.Port,
			Cause: fmt.Errorf("select namespace %q: %w", m.cfg.Namespace, err),
		})
	}

	m.generation++
	cache := NewStatementCache(m.generation)
	for _, r := range m.templates {
		if _, err := cache.Prepare(ctx, session, r.name, r.template); err != nil {
			session.Close()
			return m.connectFailed(err)
		}
	}

	m.handle = &sessionHandle{
		session:    session,
		generation: m.generation,
		statements: cache,
	}

	m.opts.Logger.Info("connected",
		"host", m.cfg.Host,
		"port", m.cfg.Port,
		"namespace", m.cfg.Namespace,
		"statements", cache.Len(),
	)

	return nil
}

func (m *SessionManager) connectFailed(err error) error {
	m.opts.Metrics.IncConnectError()
	m.opts.Logger.Error("connect failed",
		"host", m.cfg.Host,
		"port", m.cfg.Port,
		"error", err.Error(),
	)

	return err
}

// Disconnect releases the session and discards its prepared statements.
//
// Calling Disconnect while disconnected is a no-op.
func (m *SessionManager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == nil {
		return
	}

	m.releaseLocked()
	m.opts.Logger.Info("disconnected", "host", m.cfg.Host, "port", m.cfg.Port)
}

func (m *SessionManager) releaseLocked() {
	m.handle.session.Close()
	m.handle = nil
}

// Connected reports whether a session is open.
func (m *SessionManager) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.handle != nil
}

// Statement returns the prepared statement registered under name.
//
// Parameters:
//   - name: Logical operation name
//
// Returns:
//   - *PreparedStatement: The handle of the current session
//   - error: types.ErrNotConnected or types.ErrUnknownStatement
func (m *SessionManager) Statement(name string) (*PreparedStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.handle == nil {
		return nil, types.ErrNotConnected
	}

	p, ok := m.handle.statements.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownStatement, name)
	}

	return p, nil
}

// Execute runs a statement once at the given consistency.
//
// The per-request timeout is applied as a derived context. Execute never
// retries; use ExecuteRead for the retrying read path.
//
// Parameters:
//   - ctx: Context for cancellation
//   - stmt: Statement to run
//   - c: Consistency level
//
// Returns:
//   - *cql.Rows: The full result
//   - error: *types.TimeoutError, *types.UnavailableError, *types.TransportError,
//     the caller's context error, or types.ErrNotConnected / types.ErrStaleStatement
func (m *SessionManager) Execute(ctx context.Context, stmt Statement, c types.Consistency) (*cql.Rows, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.handle
	if h == nil {
		return nil, types.ErrNotConnected
	}
	if stmt.generation != 0 && stmt.generation != h.generation {
		return nil, types.ErrStaleStatement
	}

	reqCtx, cancel := context.WithTimeout(ctx, m.cfg.RequestTimeout)
	defer cancel()

	if m.opts.SerializeExecution {
		m.execMu.Lock()
		defer m.execMu.Unlock()
	}

	rows, err := h.session.Execute(reqCtx, stmt.stmt, c)
	if err != nil {
		return nil, translateFailure(ctx, err, c)
	}
	if rows == nil {
		rows = &cql.Rows{}
	}

	return rows, nil
}
