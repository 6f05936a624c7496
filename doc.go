// Package peopledao provides a Cassandra data access object for person
// records with an adaptive read retry policy.
//
// Reads start at a baseline consistency level (QUORUM by default). When an
// attempt times out and the retry budget allows it, the read is retried at
// consistency ONE so that a partially available cluster can still serve it.
// Writes are issued once at the write consistency level and are never
// retried.
//
// # Basic Usage
//
//	cfg := peopledao.DefaultConfig()
//	cfg.Host = "cassandra.local"
//
//	dao, err := peopledao.NewPersonDAO(v1.NewDialer(), cfg,
//	    peopledao.WithLogger(zerologadapter.New(logger)),
//	    peopledao.WithMetrics(vm.New()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := dao.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer dao.Disconnect()
//
//	err = dao.Store(ctx, peopledao.NewPerson("Chris", "Batey", 29))
//	people, err := dao.RetrieveAll(ctx)
//
// # Sessions and Prepared Statements
//
// A SessionManager owns the datastore session. Connect opens it, selects the
// namespace at consistency ONE and prepares every registered template.
// PreparedStatement handles are tied to the session that prepared them;
// after a reconnect, statements bound from an older handle fail with
// types.ErrStaleStatement.
//
// # Retry Policies
//
// The read loop consults a RetryPolicy after every failed attempt:
//
//   - policy.DowngradingRetry: retries timeouts at ONE up to a budget (default)
//   - policy.NeverRetry: issues every read once
//   - policy.LoggingRetry: logs the decisions of another policy
//
// Unavailable and transport failures are never retried.
//
// # Error Handling
//
// Session failures are normalized to *types.TimeoutError,
// *types.UnavailableError or *types.TransportError. A read that gives up
// returns *types.UnableToRetrieveError carrying the attempt count; a failed
// write returns *types.UnableToStoreError. Both unwrap to the last session
// error:
//
//	people, err := dao.RetrieveAll(ctx)
//	var timeout *types.TimeoutError
//	if errors.As(err, &timeout) {
//	    log.Printf("timed out at %s", timeout.Consistency)
//	}
//
// Operations on a disconnected DAO return types.ErrNotConnected.
package peopledao
