// Package v1 provides an adapter for gocql v1 (github.com/gocql/gocql).
package v1

import (
	"context"
	"errors"
	"sync"

	"github.com/gocql/gocql"

	"github.com/arloliu/peopledao/adapter/cql"
)

// errPrepared aborts a Bind execution once the server has returned the
// prepared statement metadata.
var errPrepared = errors.New("peopledao: statement prepared")

// errNoHost is returned when the endpoint names no contact point.
var errNoHost = errors.New("peopledao: endpoint has no host")

// errNotDML is returned for templates gocql will not prepare.
var errNotDML = errors.New("only select, insert, update, delete and batch statements can be prepared")

// ClusterOption customizes the gocql cluster configuration before a session
// is created.
type ClusterOption func(*gocql.ClusterConfig)

// WithProtoVersion pins the native protocol version.
func WithProtoVersion(v int) ClusterOption {
	return func(c *gocql.ClusterConfig) {
		c.ProtoVersion = v
	}
}

// WithDisableInitialHostLookup connects only to the contact point.
//
// Useful against containers whose advertised peer addresses are not
// reachable from the client.
func WithDisableInitialHostLookup() ClusterOption {
	return func(c *gocql.ClusterConfig) {
		c.DisableInitialHostLookup = true
	}
}

// Dialer opens gocql v1 sessions.
type Dialer struct {
	opts []ClusterOption
}

var _ cql.Dialer = (*Dialer)(nil)

// NewDialer creates a dialer.
//
// Parameters:
//   - opts: Cluster customizations applied to every session
//
// Returns:
//   - *Dialer: A dialer implementing cql.Dialer
func NewDialer(opts ...ClusterOption) *Dialer {
	return &Dialer{opts: opts}
}

// Open returns a session for the endpoint.
//
// No connection is made until SelectNamespace, which creates the single
// gocql session bound to the keyspace. Driver-level retries are disabled;
// every attempt the caller issues maps to exactly one request.
func (d *Dialer) Open(ctx context.Context, ep cql.Endpoint) (cql.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ep.Host == "" {
		return nil, errNoHost
	}

	return &Session{endpoint: ep, opts: d.opts}, nil
}

// Session wraps a gocql v1 session.
//
// gocql refuses USE statements, so SelectNamespace creates the underlying
// session with the keyspace already set. The consistency it receives
// becomes the session default; gocql issues no statement at that level
// while binding the keyspace.
type Session struct {
	endpoint cql.Endpoint
	opts     []ClusterOption

	mu      sync.RWMutex
	session *gocql.Session
}

var _ cql.Session = (*Session)(nil)

func (s *Session) newCluster(keyspace string, c cql.Consistency) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(s.endpoint.Host)
	if s.endpoint.Port > 0 {
		cluster.Port = s.endpoint.Port
	}
	if s.endpoint.RequestTimeout > 0 {
		cluster.Timeout = s.endpoint.RequestTimeout
	}
	if s.endpoint.ConnectTimeout > 0 {
		cluster.ConnectTimeout = s.endpoint.ConnectTimeout
	}
	cluster.Keyspace = keyspace
	cluster.Consistency = ToGocqlConsistency(c)
	cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: 0}

	for _, opt := range s.opts {
		opt(cluster)
	}

	return cluster
}

// SelectNamespace connects to the cluster with the keyspace bound.
//
// Selecting again replaces the gocql session and closes the previous one.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: Keyspace name
//   - c: Default consistency of the new session
//
// Returns:
//   - error: Driver error if the keyspace cannot be selected
func (s *Session) SelectNamespace(ctx context.Context, name string, c cql.Consistency) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next, err := s.newCluster(name, c).CreateSession()
	if err != nil {
		return translateError(err, c)
	}

	s.mu.Lock()
	prev := s.session
	s.session = next
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
	}

	return nil
}

// Prepare prepares a template server-side and returns its metadata.
//
// The template is executed through Session.Bind with a binding callback
// that captures the prepared metadata and then aborts, so nothing is sent
// beyond the PREPARE request.
func (s *Session) Prepare(ctx context.Context, template string) (cql.PreparedInfo, error) {
	if !isDML(template) {
		return cql.PreparedInfo{}, errNotDML
	}

	session := s.current()
	if session == nil {
		return cql.PreparedInfo{}, gocql.ErrSessionClosed
	}

	var info *gocql.QueryInfo
	err := session.Bind(template, func(q *gocql.QueryInfo) ([]any, error) {
		info = q
		return nil, errPrepared
	}).WithContext(ctx).Exec()

	if info == nil {
		if err == nil {
			err = errNotDML
		}

		return cql.PreparedInfo{}, err
	}

	return cql.PreparedInfo{
		Params:  fromGocqlColumns(info.Args),
		Columns: fromGocqlColumns(info.Rval),
	}, nil
}

// Execute runs a statement at the given consistency and reads every row.
func (s *Session) Execute(ctx context.Context, stmt cql.Statement, c cql.Consistency) (*cql.Rows, error) {
	session := s.current()
	if session == nil {
		return nil, translateError(gocql.ErrSessionClosed, c)
	}

	iter := session.Query(stmt.Text, stmt.Values...).
		WithContext(ctx).
		Consistency(ToGocqlConsistency(c)).
		Iter()

	columns := fromGocqlColumns(iter.Columns())
	data, err := iter.SliceMap()
	if closeErr := iter.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, translateError(err, c)
	}

	return &cql.Rows{Columns: columns, Data: data}, nil
}

// Close terminates the session.
func (s *Session) Close() {
	s.mu.Lock()
	session := s.session
	s.session = nil
	s.mu.Unlock()

	if session != nil {
		session.Close()
	}
}

func (s *Session) current() *gocql.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}
