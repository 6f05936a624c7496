package peopledao

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/peopledao/policy"
	"github.com/arloliu/peopledao/test/testutil"
	"github.com/arloliu/peopledao/types"
)

func TestConnectSelectsNamespaceAtOneFirst(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	newConnectedDAO(t, cluster, func(c *Config) {
		c.ReadConsistency = types.All
	})

	activity := cluster.Activity()
	require.GreaterOrEqual(t, len(activity), 2)
	require.Equal(t, testutil.ActivityConnection, activity[0].Kind)
	require.Equal(t, testutil.ActivityNamespace, activity[1].Kind)
	require.Equal(t, types.One, activity[1].Consistency)
	require.Equal(t, "use people", activity[1].Text)

	selections := cluster.NamespaceSelections()
	require.Len(t, selections, 1)

	prepares := cluster.Prepares()
	require.Len(t, prepares, 2)
	require.Equal(t, InsertPersonCQL, prepares[0].Text)
	require.Equal(t, SelectPersonByNameCQL, prepares[1].Text)
	require.Empty(t, cluster.Queries())
}

func TestConnectPassesEndpoint(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	newConnectedDAO(t, cluster, func(c *Config) {
		c.Host = "cassandra.local"
		c.Port = 19042
		c.Namespace = "scassandra"
	})

	activity := cluster.Activity()
	require.Equal(t, "cassandra.local:19042", activity[0].Text)
	require.Equal(t, "use scassandra", activity[1].Text)
}

func TestConnectOpenFailure(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	refused := errors.New("connection refused")
	cluster.SetOpenError(refused)

	m, err := NewSessionManager(cluster, DefaultConfig())
	require.NoError(t, err)

	err = m.Connect(context.Background())

	var connErr *types.ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.Equal(t, "localhost", connErr.Host)
	require.Equal(t, 9042, connErr.Port)
	require.ErrorIs(t, err, refused)
	require.False(t, m.Connected())
}

func TestConnectNamespaceFailure(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	cluster.SetNamespaceError(errors.New("keyspace does not exist"))

	m, err := NewSessionManager(cluster, DefaultConfig())
	require.NoError(t, err)

	var connErr *types.ConnectionError
	require.ErrorAs(t, m.Connect(context.Background()), &connErr)
	require.False(t, m.Connected())
	require.Equal(t, 0, cluster.OpenSessions())
}

func TestConnectPrepareFailure(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	rejected := errors.New("line 1:0 no viable alternative")
	cluster.PrimePrepareError(InsertPersonCQL, rejected)

	dao, err := NewPersonDAO(cluster, DefaultConfig())
	require.NoError(t, err)

	err = dao.Connect(context.Background())

	var prepErr *types.PrepareError
	require.ErrorAs(t, err, &prepErr)
	require.Equal(t, OpStorePerson, prepErr.Operation)
	require.Equal(t, InsertPersonCQL, prepErr.Template)
	require.ErrorIs(t, err, rejected)
	require.False(t, dao.Sessions().Connected())
	require.Equal(t, 0, cluster.OpenSessions())
}

func TestDisconnectWithoutConnectIsNoop(t *testing.T) {
	m, err := NewSessionManager(testutil.NewFakeCluster(), DefaultConfig())
	require.NoError(t, err)

	m.Disconnect()
	m.Disconnect()
	require.False(t, m.Connected())
}

func TestDisconnectReleasesSession(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	dao := newConnectedDAO(t, cluster, nil)
	require.Equal(t, 1, cluster.OpenSessions())

	dao.Disconnect()
	require.Equal(t, 0, cluster.OpenSessions())

	_, err := dao.Sessions().Statement(OpStorePerson)
	require.ErrorIs(t, err, types.ErrNotConnected)
}

func TestReconnectReleasesPreviousSession(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	dao := newConnectedDAO(t, cluster, nil)

	require.NoError(t, dao.Connect(context.Background()))
	require.Equal(t, 2, cluster.Connections())
	require.Equal(t, 1, cluster.OpenSessions())
	require.Len(t, cluster.NamespaceSelections(), 2)
}

func TestStaleStatementAfterReconnect(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	dao := newConnectedDAO(t, cluster, nil)
	m := dao.Sessions()

	prepared, err := m.Statement(OpStorePerson)
	require.NoError(t, err)
	stmt, err := prepared.Bind("Chris", "Batey", 30, nil)
	require.NoError(t, err)

	m.Disconnect()
	require.NoError(t, m.Connect(context.Background()))

	err = m.ExecuteWrite(context.Background(), OpStorePerson, stmt)
	require.ErrorIs(t, err, types.ErrStaleStatement)

	_, err = m.ExecuteRead(context.Background(), OpStorePerson, stmt)
	require.ErrorIs(t, err, types.ErrStaleStatement)
	require.Empty(t, cluster.QueriesFor(InsertPersonCQL))

	fresh, err := m.Statement(OpStorePerson)
	require.NoError(t, err)
	stmt, err = fresh.Bind("Chris", "Batey", 30, nil)
	require.NoError(t, err)
	require.NoError(t, m.ExecuteWrite(context.Background(), OpStorePerson, stmt))
}

func TestRegisterAfterConnect(t *testing.T) {
	dao := newConnectedDAO(t, testutil.NewFakeCluster(), nil)

	err := dao.Sessions().Register("other", "select * from other")
	require.ErrorIs(t, err, types.ErrAlreadyConnected)
}

func TestRegisterReplacesTemplate(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	m, err := NewSessionManager(cluster, DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, m.Register("op", "select a from t where k = ?"))
	require.NoError(t, m.Register("op", "select b from t where k = ?"))
	require.NoError(t, m.Connect(context.Background()))
	defer m.Disconnect()

	p, err := m.Statement("op")
	require.NoError(t, err)
	require.Equal(t, "select b from t where k = ?", p.Template())
	require.Len(t, cluster.Prepares(), 1)
}

func TestUnknownStatement(t *testing.T) {
	dao := newConnectedDAO(t, testutil.NewFakeCluster(), nil)

	_, err := dao.Sessions().Statement("missing")
	require.ErrorIs(t, err, types.ErrUnknownStatement)
}

func TestAttemptObserverSeesEveryAttempt(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	cluster.PrimeQuery(SelectAllPeopleCQL,
		testutil.TimeoutResponse(),
		testutil.TimeoutResponse(),
		testutil.RowsResponse(personColumns, chrisRow(29)),
	)

	var (
		mu     sync.Mutex
		events []AttemptEvent
	)
	observer := AttemptObserverFunc(func(ev AttemptEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})

	dao := newConnectedDAO(t, cluster, withBudget(2), WithAttemptObserver(observer))

	_, err := dao.RetrieveAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, dao.Store(context.Background(), NewPerson("Ada", "L", 36)))

	require.Len(t, events, 4)
	for i, ev := range events[:3] {
		require.Equal(t, OperationRead, ev.Kind)
		require.Equal(t, OpRetrieveAll, ev.Operation)
		require.Equal(t, i, ev.Attempt)
		require.Equal(t, events[0].CallID, ev.CallID)
	}
	require.Equal(t, types.Quorum, events[0].Consistency)
	require.Equal(t, types.One, events[1].Consistency)
	require.Equal(t, types.One, events[2].Consistency)

	var timeout *types.TimeoutError
	require.ErrorAs(t, events[0].Err, &timeout)
	require.NoError(t, events[2].Err)

	require.Equal(t, OperationWrite, events[3].Kind)
	require.Equal(t, types.One, events[3].Consistency)
	require.NotEqual(t, events[0].CallID, events[3].CallID)
}

func TestMetricsRecordAttempts(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	cluster.PrimeQuery(SelectAllPeopleCQL,
		testutil.TimeoutResponse(),
		testutil.RowsResponse(personColumns, chrisRow(29)),
	)
	cluster.PrimeQuery(InsertPersonCQL, testutil.UnavailableResponse())

	collector := testutil.NewTestMetricsCollector()
	dao := newConnectedDAO(t, cluster, nil, WithMetrics(collector))

	_, err := dao.RetrieveAll(context.Background())
	require.NoError(t, err)
	require.Error(t, dao.Store(context.Background(), NewPerson("Chris", "Batey", 30)))

	require.Equal(t, int64(1), collector.ConnectTotal)
	require.Equal(t, int64(2), collector.TotalReadAttempts())
	require.Equal(t, int64(1), collector.ReadAttemptsAt(types.Quorum))
	require.Equal(t, int64(1), collector.ReadAttemptsAt(types.One))
	require.Equal(t, int64(1), collector.RetriesOf(types.Quorum, types.One))
	require.Equal(t, int64(1), collector.ReadErrors[types.FailureTimeout])
	require.Len(t, collector.ReadDuration, 2)
	require.Equal(t, int64(1), collector.WriteTotal)
	require.Equal(t, int64(1), collector.WriteErrorsOf(types.FailureUnavailable))
}

func TestMetricsRecordExhaustion(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	cluster.PrimeQuery(SelectAllPeopleCQL, testutil.TimeoutResponse())

	collector := testutil.NewTestMetricsCollector()
	dao := newConnectedDAO(t, cluster, withBudget(1), WithMetrics(collector))

	_, err := dao.RetrieveAll(context.Background())
	require.Error(t, err)
	require.Equal(t, int64(1), collector.ReadExhausted)
	require.Equal(t, int64(2), collector.ReadErrors[types.FailureTimeout])
}

func TestMetricsRecordConnectErrors(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	cluster.SetOpenError(errors.New("refused"))

	collector := testutil.NewTestMetricsCollector()
	m, err := NewSessionManager(cluster, DefaultConfig(), WithMetrics(collector))
	require.NoError(t, err)

	require.Error(t, m.Connect(context.Background()))
	require.Equal(t, int64(1), collector.ConnectTotal)
	require.Equal(t, int64(1), collector.ConnectErrors)
}

func TestLoggingRetryPolicy(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	cluster.PrimeQuery(SelectAllPeopleCQL, testutil.TimeoutResponse())

	logger := testutil.NewRecordingLogger()
	dao := newConnectedDAO(t, cluster, nil,
		WithLogger(logger),
		WithReadRetryPolicy(policy.NewLoggingRetry(policy.NewDowngradingRetry(1), logger)),
	)

	_, err := dao.RetrieveAll(context.Background())
	require.Error(t, err)

	require.Contains(t, logger.Messages("info"), "retrying after failure")
	require.Contains(t, logger.Messages("warn"), "giving up after failure")
	require.Contains(t, logger.Messages("warn"), "read failed")
}

func TestNeverRetryPolicyDisablesReadRetries(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	cluster.PrimeQuery(SelectAllPeopleCQL, testutil.TimeoutResponse())

	dao := newConnectedDAO(t, cluster, withBudget(5), WithReadRetryPolicy(policy.NewNeverRetry()))

	_, err := dao.RetrieveAll(context.Background())

	var unable *types.UnableToRetrieveError
	require.ErrorAs(t, err, &unable)
	require.Equal(t, 1, unable.Attempts)
}

func TestConcurrentReadsKeepPerCallState(t *testing.T) {
	const (
		callers = 16
		budget  = 2
	)

	for _, opts := range [][]Option{nil, {WithSerializedExecution()}} {
		cluster := testutil.NewFakeCluster()
		cluster.PrimeQuery(SelectAllPeopleCQL, testutil.TimeoutResponse())
		dao := newConnectedDAO(t, cluster, withBudget(budget), opts...)

		var wg sync.WaitGroup
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = dao.RetrieveAll(context.Background())
			}()
		}
		wg.Wait()

		for _, err := range errs {
			var unable *types.UnableToRetrieveError
			require.ErrorAs(t, err, &unable)
			require.Equal(t, budget+1, unable.Attempts)
		}
		require.Len(t, cluster.QueriesFor(SelectAllPeopleCQL), callers*(budget+1))
	}
}

func TestExecuteSimpleStatement(t *testing.T) {
	cluster := testutil.NewFakeCluster()
	dao := newConnectedDAO(t, cluster, nil)

	rows, err := dao.Sessions().Execute(context.Background(), SimpleStatement("select now() from system.local"), types.LocalOne)
	require.NoError(t, err)
	require.Equal(t, 0, rows.Len())

	queries := cluster.QueriesFor("select now() from system.local")
	require.Len(t, queries, 1)
	require.False(t, queries[0].Prepared)
	require.Equal(t, types.LocalOne, queries[0].Consistency)
}
