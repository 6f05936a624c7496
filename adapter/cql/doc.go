// Package cql provides the transport interfaces that sit below the peopledao
// session manager.
//
// The core never talks to a driver directly. It depends on two small
// interfaces:
//
//   - Dialer: Opens a session against a host and port
//   - Session: Selects a keyspace, prepares templates, executes statements
//
// Results are read in full into Rows, which carry typed column metadata so
// the result mapper can check them against an explicit schema.
//
// # Adapters
//
// Driver-specific adapters are provided in subpackages:
//
//   - [github.com/arloliu/peopledao/adapter/cql/v1]: Adapter for gocql v1.x
//
// The scriptable in-memory implementation used by unit tests lives in
// [github.com/arloliu/peopledao/test/testutil].
//
// # Usage
//
//	import (
//	    "github.com/arloliu/peopledao"
//	    v1 "github.com/arloliu/peopledao/adapter/cql/v1"
//	)
//
//	dao, _ := peopledao.NewPersonDAO(v1.NewDialer(), peopledao.DefaultConfig())
//	if err := dao.Connect(ctx); err != nil {
//	    return err
//	}
//	defer dao.Disconnect()
package cql
