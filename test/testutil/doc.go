// Package testutil provides test utilities and fake implementations for peopledao testing.
//
// # Fake Cluster
//
// [FakeCluster] is a scriptable in-memory datastore implementing cql.Dialer.
// Tests prime responses per statement text and then assert on the recorded
// activity:
//
//	cluster := testutil.NewFakeCluster()
//	cluster.PrimeQuery("select * from person",
//	    testutil.TimeoutResponse(),
//	    testutil.RowsResponse(cols, row),
//	)
//
//	dao, _ := peopledao.NewPersonDAO(cluster, peopledao.DefaultConfig())
//	_ = dao.Connect(ctx)
//	people, err := dao.RetrieveAll(ctx)
//
//	queries := cluster.QueriesFor("select * from person")
//	// queries[0].Consistency == types.Quorum, queries[1].Consistency == types.One
//
// # Recorders
//
//   - [TestMetricsCollector]: Records types.MetricsCollector calls
//   - [RecordingLogger]: Records types.Logger messages with their fields
//
// # Integration Test Helpers
//
//   - [StartCassandra]: Starts a Cassandra test container with the person table (requires Docker)
package testutil
