// Package cql provides the CQL transport interfaces the peopledao core depends on.
package cql

import (
	"context"
	"time"

	"github.com/arloliu/peopledao/types"
)

// Type aliases for convenience - re-export from types package.
type Consistency = types.Consistency

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Endpoint identifies the contact point and per-request limits of a session.
type Endpoint struct {
	Host string
	Port int

	// RequestTimeout bounds every request issued through the session.
	RequestTimeout time.Duration

	// ConnectTimeout bounds the initial connection handshake.
	ConnectTimeout time.Duration
}

// Dialer opens transport sessions.
//
// This interface is implemented by the gocql v1 adapter and by the
// in-memory fake in test/testutil.
type Dialer interface {
	// Open establishes a session against the endpoint.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - ep: Contact point and timeouts
	//
	// Returns:
	//   - Session: The open session
	//   - error: Any error from the driver; the caller wraps it in a ConnectionError
	Open(ctx context.Context, ep Endpoint) (Session, error)
}

// Session represents a raw CQL session from the underlying driver.
//
// Implementations must be safe for concurrent use unless documented
// otherwise. Execution failures should be reported as *types.TimeoutError,
// *types.UnavailableError or *types.TransportError; anything else is
// treated as a transport failure by the caller.
type Session interface {
	// SelectNamespace selects the keyspace subsequent statements run against.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - name: Keyspace name
	//   - c: Consistency the selection is issued at
	//
	// Returns:
	//   - error: nil on success
	SelectNamespace(ctx context.Context, name string, c Consistency) error

	// Prepare parses a statement template server-side.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - template: CQL statement with ? placeholders
	//
	// Returns:
	//   - PreparedInfo: Declared bind parameters and result columns
	//   - error: The rejection reason if the template is invalid
	Prepare(ctx context.Context, template string) (PreparedInfo, error)

	// Execute runs a statement and reads the full result.
	//
	// Parameters:
	//   - ctx: Context carrying the per-request deadline
	//   - stmt: Statement text and bound values
	//   - c: Consistency level for this execution
	//
	// Returns:
	//   - *Rows: Result columns and rows (empty for writes)
	//   - error: nil on success
	Execute(ctx context.Context, stmt Statement, c Consistency) (*Rows, error)

	// Close terminates the session.
	Close()
}

// Statement is an executable statement.
type Statement struct {
	// Text is the CQL statement.
	Text string

	// Values are the positional bind values.
	Values []any

	// Prepared reports whether Text was prepared during connect.
	Prepared bool
}

// PreparedInfo describes a prepared statement.
type PreparedInfo struct {
	// Params are the declared bind parameters, in placeholder order.
	Params []ColumnInfo

	// Columns are the result columns, empty for writes.
	Columns []ColumnInfo
}

// Rows is a fully read result set.
type Rows struct {
	// Columns is the result metadata in select order.
	Columns []ColumnInfo

	// Data holds one map per row keyed by column name, in datastore order.
	Data []map[string]any
}

// Len returns the number of rows.
func (r *Rows) Len() int {
	if r == nil {
		return 0
	}

	return len(r.Data)
}

// ColumnInfo holds metadata about a column in query results or bind parameters.
type ColumnInfo struct {
	Keyspace string
	Table    string
	Name     string
	Type     ColumnType
}

// ColumnType is the CQL type of a column, e.g. "text" or "set<timestamp>".
type ColumnType string

// Column types understood by the result mapper.
const (
	TypeText         ColumnType = "text"
	TypeInt          ColumnType = "int"
	TypeBigInt       ColumnType = "bigint"
	TypeBoolean      ColumnType = "boolean"
	TypeDouble       ColumnType = "double"
	TypeTimestamp    ColumnType = "timestamp"
	TypeUUID         ColumnType = "uuid"
	TypeBlob         ColumnType = "blob"
	TypeSetText      ColumnType = "set<text>"
	TypeSetTimestamp ColumnType = "set<timestamp>"
	TypeUnknown      ColumnType = "unknown"
)
