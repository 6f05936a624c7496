package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/arloliu/peopledao/adapter/cql"
	"github.com/arloliu/peopledao/types"
)

// ErrSessionClosed is returned by a FakeSession after Close.
var ErrSessionClosed = errors.New("testutil: fake session closed")

// FailureMode selects the failure a primed response produces.
type FailureMode int

// Failure modes.
const (
	FailNone FailureMode = iota
	FailTimeout
	FailUnavailable
	FailTransport
)

// Response is one primed outcome of a statement execution.
type Response struct {
	// Rows returned on success. Nil means an empty result.
	Rows *cql.Rows

	// Failure, if set, produces a session error at the execution's
	// consistency level.
	Failure FailureMode

	// Err, if set, is returned as-is. Takes precedence over Failure.
	Err error

	// Delay holds the execution before responding. If the request context
	// ends first, its error is returned instead.
	Delay time.Duration
}

// RowsResponse returns a successful response.
func RowsResponse(columns []cql.ColumnInfo, data ...map[string]any) Response {
	return Response{Rows: &cql.Rows{Columns: columns, Data: data}}
}

// TimeoutResponse returns a response that fails with a coordinator timeout.
func TimeoutResponse() Response {
	return Response{Failure: FailTimeout}
}

// UnavailableResponse returns a response that fails with too few replicas.
func UnavailableResponse() Response {
	return Response{Failure: FailUnavailable}
}

// TransportResponse returns a response that fails at the connection level.
func TransportResponse() Response {
	return Response{Failure: FailTransport}
}

// DelayedResponse returns an empty success after d.
func DelayedResponse(d time.Duration) Response {
	return Response{Delay: d}
}

// After returns a copy of r that is held for d before responding.
func (r Response) After(d time.Duration) Response {
	r.Delay = d

	return r
}

// ActivityKind classifies recorded activity.
type ActivityKind string

// Activity kinds.
const (
	ActivityConnection ActivityKind = "connection"
	ActivityNamespace  ActivityKind = "namespace"
	ActivityPrepare    ActivityKind = "prepare"
	ActivityQuery      ActivityKind = "query"
	ActivityClose      ActivityKind = "close"
)

// Activity is one operation observed by a FakeCluster.
type Activity struct {
	Kind        ActivityKind
	Session     int
	Text        string
	Values      []any
	Consistency types.Consistency
	Prepared    bool
}

// FakeCluster is a scriptable in-memory datastore implementing cql.Dialer.
//
// Statements are primed with queues of responses; the last response of a
// queue repeats once the queue is drained. Unprimed statements succeed with
// an empty result. Every connection, keyspace selection, prepare and
// execution is recorded in order.
type FakeCluster struct {
	mu sync.Mutex

	openErr      error
	namespaceErr error
	primes       map[string][]Response
	prepareErrs  map[string]error
	params       map[string][]cql.ColumnInfo
	activity     []Activity
	sessions     []*FakeSession
}

// Compile-time assertion that FakeCluster implements cql.Dialer.
var _ cql.Dialer = (*FakeCluster)(nil)

// NewFakeCluster creates an empty fake cluster.
func NewFakeCluster() *FakeCluster {
	return &FakeCluster{
		primes:      make(map[string][]Response),
		prepareErrs: make(map[string]error),
		params:      make(map[string][]cql.ColumnInfo),
	}
}

// SetOpenError makes every Open fail with err.
func (f *FakeCluster) SetOpenError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.openErr = err
}

// SetNamespaceError makes every SelectNamespace fail with err.
func (f *FakeCluster) SetNamespaceError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.namespaceErr = err
}

// PrimeQuery queues responses for executions of text.
func (f *FakeCluster) PrimeQuery(text string, responses ...Response) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.primes[text] = append(f.primes[text], responses...)
}

// PrimePrepareError makes Prepare of template fail with err.
func (f *FakeCluster) PrimePrepareError(template string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prepareErrs[template] = err
}

// PrimeParams declares the bind parameters returned when template is
// prepared. By default one parameter is declared per ? placeholder.
func (f *FakeCluster) PrimeParams(template string, params ...cql.ColumnInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.params[template] = params
}

// ClearPrimes drops every primed response and prepare error.
func (f *FakeCluster) ClearPrimes() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.primes = make(map[string][]Response)
	f.prepareErrs = make(map[string]error)
	f.params = make(map[string][]cql.ColumnInfo)
	f.openErr = nil
	f.namespaceErr = nil
}

// ClearActivity drops recorded activity.
func (f *FakeCluster) ClearActivity() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.activity = nil
}

// Activity returns every recorded operation in order.
func (f *FakeCluster) Activity() []Activity {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.activity)
}

// Queries returns recorded executions in order.
func (f *FakeCluster) Queries() []Activity {
	return f.filter(ActivityQuery)
}

// QueriesFor returns recorded executions of text in order.
func (f *FakeCluster) QueriesFor(text string) []Activity {
	var out []Activity
	for _, a := range f.Queries() {
		if a.Text == text {
			out = append(out, a)
		}
	}

	return out
}

// NamespaceSelections returns recorded keyspace selections in order.
func (f *FakeCluster) NamespaceSelections() []Activity {
	return f.filter(ActivityNamespace)
}

// Prepares returns recorded prepare requests in order.
func (f *FakeCluster) Prepares() []Activity {
	return f.filter(ActivityPrepare)
}

// Connections returns the number of sessions opened.
func (f *FakeCluster) Connections() int {
	return len(f.filter(ActivityConnection))
}

// OpenSessions returns the number of sessions not yet closed.
func (f *FakeCluster) OpenSessions() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, s := range f.sessions {
		if !s.closed {
			n++
		}
	}

	return n
}

func (f *FakeCluster) filter(kind ActivityKind) []Activity {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Activity
	for _, a := range f.activity {
		if a.Kind == kind {
			out = append(out, a)
		}
	}

	return out
}

// Open opens a fake session.
func (f *FakeCluster) Open(ctx context.Context, ep cql.Endpoint) (cql.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.openErr != nil {
		return nil, f.openErr
	}

	s := &FakeSession{cluster: f, id: len(f.sessions) + 1, endpoint: ep}
	f.sessions = append(f.sessions, s)
	f.activity = append(f.activity, Activity{Kind: ActivityConnection, Session: s.id, Text: fmt.Sprintf("%s:%d", ep.Host, ep.Port)})

	return s, nil
}

func (f *FakeCluster) record(a Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.activity = append(f.activity, a)
}

func (f *FakeCluster) next(text string) Response {
	f.mu.Lock()
	defer f.mu.Unlock()

	queue := f.primes[text]
	switch len(queue) {
	case 0:
		return Response{}
	case 1:
		return queue[0]
	default:
		f.primes[text] = queue[1:]
		return queue[0]
	}
}

// FakeSession is a session opened by a FakeCluster.
type FakeSession struct {
	cluster  *FakeCluster
	id       int
	endpoint cql.Endpoint

	// guarded by cluster.mu
	closed    bool
	namespace string
}

// Compile-time assertion that FakeSession implements cql.Session.
var _ cql.Session = (*FakeSession)(nil)

// Endpoint returns the endpoint the session was opened with.
func (s *FakeSession) Endpoint() cql.Endpoint {
	return s.endpoint
}

// Namespace returns the selected keyspace.
func (s *FakeSession) Namespace() string {
	s.cluster.mu.Lock()
	defer s.cluster.mu.Unlock()

	return s.namespace
}

func (s *FakeSession) isClosed() bool {
	s.cluster.mu.Lock()
	defer s.cluster.mu.Unlock()

	return s.closed
}

// SelectNamespace records the selection.
func (s *FakeSession) SelectNamespace(_ context.Context, name string, c cql.Consistency) error {
	if s.isClosed() {
		return ErrSessionClosed
	}

	s.cluster.record(Activity{Kind: ActivityNamespace, Session: s.id, Text: "use " + name, Consistency: c})

	s.cluster.mu.Lock()
	defer s.cluster.mu.Unlock()

	if s.cluster.namespaceErr != nil {
		return s.cluster.namespaceErr
	}
	s.namespace = name

	return nil
}

// Prepare records the request and declares one parameter per placeholder
// unless PrimeParams says otherwise.
func (s *FakeSession) Prepare(_ context.Context, template string) (cql.PreparedInfo, error) {
	if s.isClosed() {
		return cql.PreparedInfo{}, ErrSessionClosed
	}

	s.cluster.record(Activity{Kind: ActivityPrepare, Session: s.id, Text: template})

	s.cluster.mu.Lock()
	defer s.cluster.mu.Unlock()

	if err := s.cluster.prepareErrs[template]; err != nil {
		return cql.PreparedInfo{}, err
	}

	if params, ok := s.cluster.params[template]; ok {
		return cql.PreparedInfo{Params: slices.Clone(params)}, nil
	}

	n := strings.Count(template, "?")
	params := make([]cql.ColumnInfo, n)
	for i := range params {
		params[i] = cql.ColumnInfo{Name: fmt.Sprintf("p%d", i), Type: cql.TypeUnknown}
	}

	return cql.PreparedInfo{Params: params}, nil
}

// Execute records the statement and plays the next primed response.
func (s *FakeSession) Execute(ctx context.Context, stmt cql.Statement, c cql.Consistency) (*cql.Rows, error) {
	if s.isClosed() {
		return nil, &types.TransportError{Cause: ErrSessionClosed}
	}

	s.cluster.record(Activity{
		Kind:        ActivityQuery,
		Session:     s.id,
		Text:        stmt.Text,
		Values:      slices.Clone(stmt.Values),
		Consistency: c,
		Prepared:    stmt.Prepared,
	})

	resp := s.cluster.next(stmt.Text)

	if resp.Delay > 0 {
		timer := time.NewTimer(resp.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	switch resp.Failure {
	case FailTimeout:
		return nil, &types.TimeoutError{Consistency: c, Cause: errors.New("testutil: primed read timeout")}
	case FailUnavailable:
		return nil, &types.UnavailableError{Consistency: c, Required: 2, Alive: 1, Cause: errors.New("testutil: primed unavailable")}
	case FailTransport:
		return nil, &types.TransportError{Cause: errors.New("testutil: primed transport failure")}
	}

	if resp.Rows == nil {
		return &cql.Rows{}, nil
	}

	return &cql.Rows{
		Columns: slices.Clone(resp.Rows.Columns),
		Data:    slices.Clone(resp.Rows.Data),
	}, nil
}

// Close marks the session closed.
func (s *FakeSession) Close() {
	s.cluster.mu.Lock()
	defer s.cluster.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cluster.activity = append(s.cluster.activity, Activity{Kind: ActivityClose, Session: s.id})
}
