// Package v1 provides an adapter for gocql v1.x to work with the peopledao library.
//
// # Usage
//
//	dialer := v1.NewDialer(v1.WithProtoVersion(4))
//	dao, err := peopledao.NewPersonDAO(dialer, peopledao.DefaultConfig())
//
// Open creates a keyspace-less session. SelectNamespace then replaces it with
// a session bound to the keyspace, because gocql does not accept USE
// statements. Driver-level retries are disabled on every session.
//
// # Errors
//
// Execution failures are translated before they leave the adapter:
//
//   - Read/write timeouts and client-side deadlines: *types.TimeoutError
//   - Unavailable replicas: *types.UnavailableError
//   - Everything else: *types.TransportError
//
// # Type Conversions
//
//   - [ToGocqlConsistency]: Converts peopledao Consistency to gocql.Consistency
//   - [FromGocqlConsistency]: Converts gocql.Consistency to peopledao Consistency
//   - [FromGocqlType]: Converts gocql type metadata to a column type
//
// # Thread Safety
//
// Session is safe for concurrent use, matching gocql's thread safety guarantees.
package v1
