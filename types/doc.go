// Package types provides shared types and error definitions for the peopledao library.
//
// This is a leaf package with zero peopledao imports to prevent import cycles.
// All packages in peopledao can safely import this package.
//
// # Consistency
//
// Consistency levels mirror the CQL wire codes, so they convert directly to
// gocql consistency values:
//
//	const (
//	    Any         Consistency = 0x00
//	    One         Consistency = 0x01
//	    Two         Consistency = 0x02
//	    Quorum      Consistency = 0x04
//	    ...
//	)
//
// # Errors
//
// Session-level failures are reported as TimeoutError, UnavailableError or
// TransportError. The DAO never returns them directly: reads surface
// UnableToRetrieveError and writes surface UnableToStoreError, both of which
// unwrap to the session-level cause:
//
//	people, err := dao.RetrieveAll(ctx)
//	var timeout *types.TimeoutError
//	if errors.As(err, &timeout) {
//	    // every attempt timed out
//	}
//
// Programming and schema mismatches (BindArityError, MappingError) and
// lifecycle failures (ConnectionError, PrepareError, ErrNotConnected) are
// returned unwrapped.
package types
