package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/peopledao"
	v1 "github.com/arloliu/peopledao/adapter/cql/v1"
	"github.com/arloliu/peopledao/test/testutil"
	"github.com/arloliu/peopledao/types"
)

func TestStoreAndRetrieveAll(t *testing.T) {
	dao := newConnectedDAO(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 6, 15, 12, 30, 0, 123_000_000, time.UTC),
	}
	chris := peopledao.NewPerson("Christopher", "Batey", 29, dates...)

	require.NoError(t, dao.Store(ctx, chris))

	people, err := dao.RetrieveAll(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.True(t, chris.Equal(people[0]), "got %s", people[0])
}

func TestStoreWithoutDates(t *testing.T) {
	dao := newConnectedDAO(t)
	ctx := context.Background()

	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Christopher", "Batey", 29)))

	people, err := dao.RetrieveAll(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Empty(t, people[0].InterestingDates())
}

func TestStoreOverwritesByPrimaryKey(t *testing.T) {
	dao := newConnectedDAO(t)
	ctx := context.Background()

	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 29)))
	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 30)))

	people, err := dao.RetrieveAll(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Equal(t, 30, people[0].Age())
}

func TestRetrieveByName(t *testing.T) {
	dao := newConnectedDAO(t)
	ctx := context.Background()

	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 29)))
	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Chris", "Smith", 41)))

	people, err := dao.RetrieveByName(ctx, "Chris", "Smith")
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Equal(t, 41, people[0].Age())

	people, err = dao.RetrieveByName(ctx, "Nobody", "Here")
	require.NoError(t, err)
	require.Empty(t, people)
}

func TestRetrieveNames(t *testing.T) {
	dao := newConnectedDAO(t)
	ctx := context.Background()

	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 29)))
	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Ada", "Lovelace", 36)))

	names, err := dao.RetrieveNames(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Chris", "Ada"}, names)
}

func TestReadsIssuedAtBaselineConsistency(t *testing.T) {
	collector := testutil.NewTestMetricsCollector()
	dao := newConnectedDAO(t, peopledao.WithMetrics(collector))
	ctx := context.Background()

	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 29)))
	_, err := dao.RetrieveAll(ctx)
	require.NoError(t, err)

	require.Equal(t, int64(1), collector.ReadAttemptsAt(types.Quorum))
	require.Equal(t, int64(1), collector.TotalReadAttempts())
	require.Equal(t, int64(1), collector.WriteTotal)
	require.Equal(t, int64(0), collector.ReadExhausted)
}

func TestReconnect(t *testing.T) {
	dao := newConnectedDAO(t)
	ctx := context.Background()

	require.NoError(t, dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 29)))

	dao.Disconnect()
	_, err := dao.RetrieveAll(ctx)
	require.ErrorIs(t, err, types.ErrNotConnected)

	require.NoError(t, dao.Connect(ctx))
	people, err := dao.RetrieveByName(ctx, "Chris", "Batey")
	require.NoError(t, err)
	require.Len(t, people, 1)
}

func TestConnectUnknownNamespace(t *testing.T) {
	c := getCassandra(t)

	cfg := daoConfig(c)
	cfg.Namespace = "no_such_keyspace"

	dao, err := peopledao.NewPersonDAO(v1.NewDialer(v1.WithDisableInitialHostLookup()), cfg)
	require.NoError(t, err)

	err = dao.Connect(context.Background())

	var connErr *types.ConnectionError
	require.ErrorAs(t, err, &connErr)
	require.Equal(t, c.Host, connErr.Host)
	require.False(t, dao.Sessions().Connected())
}
