package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrNotConnected indicates a statement was executed before Connect
	// succeeded, or after Disconnect.
	ErrNotConnected = errors.New("peopledao: session is not connected")

	// ErrStaleStatement indicates a statement bound from a handle prepared by
	// a session that has since been disconnected.
	ErrStaleStatement = errors.New("peopledao: statement was prepared by a previous session")

	// ErrUnknownStatement indicates a lookup for an operation name that was
	// never registered with the session manager.
	ErrUnknownStatement = errors.New("peopledao: unknown prepared statement")

	// ErrAlreadyConnected indicates a statement registration after Connect.
	// Templates are prepared once per session, during Connect.
	ErrAlreadyConnected = errors.New("peopledao: statements must be registered before connect")

	// ErrInvalidConsistency indicates an unknown consistency level name.
	ErrInvalidConsistency = errors.New("peopledao: invalid consistency level")

	// ErrNilDialer indicates that a nil transport dialer was provided.
	ErrNilDialer = errors.New("peopledao: dialer cannot be nil")

	// ErrInvalidConfig indicates a connection setting is out of range.
	ErrInvalidConfig = errors.New("peopledao: invalid config")
)

// ConnectionError means no session could be established.
type ConnectionError struct {
	// Host and Port identify the contact point.
	Host string
	Port int

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return "peopledao: cannot connect to " + e.Host + ":" + strconv.Itoa(e.Port) + ": " + causeString(e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// PrepareError means the datastore rejected a statement template.
type PrepareError struct {
	// Operation is the logical name the template was registered under.
	Operation string

	// Template is the rejected CQL text.
	Template string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *PrepareError) Error() string {
	return fmt.Sprintf("peopledao: prepare %q failed for %q: %s", e.Operation, e.Template, causeString(e.Cause))
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *PrepareError) Unwrap() error {
	return e.Cause
}

// TimeoutError means a single attempt exceeded its deadline.
//
// It is consumed by the read retry loop and never reaches DAO callers
// directly; they see it as the cause of an UnableToRetrieveError or
// UnableToStoreError.
type TimeoutError struct {
	// Consistency is the level the timed-out attempt was issued at.
	Consistency Consistency

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return "peopledao: request timed out at " + e.Consistency.String() + ": " + causeString(e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// UnavailableError means too few replicas were alive for the consistency level.
type UnavailableError struct {
	// Consistency is the level that could not be satisfied.
	Consistency Consistency

	// Required and Alive are the replica counts reported by the coordinator.
	// Zero when the transport does not report them.
	Required int
	Alive    int

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("peopledao: not enough replicas for %s (required %d, alive %d): %s",
		e.Consistency, e.Required, e.Alive, causeString(e.Cause))
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// TransportError is a connection-level failure, and the catch-all for
// anything the error translator does not recognise. Never retried.
type TransportError struct {
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return "peopledao: transport failure: " + causeString(e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// BindArityError means the number of bound values does not match the
// number of parameters declared by the prepared statement.
type BindArityError struct {
	Operation string
	Expected  int
	Got       int
}

// Error implements the error interface.
func (e *BindArityError) Error() string {
	return fmt.Sprintf("peopledao: %q expects %d values, got %d", e.Operation, e.Expected, e.Got)
}

// MappingError means a result column cannot be converted to its target field.
type MappingError struct {
	// Column is the result column name.
	Column string

	// Declared is the column type declared by the schema or the result
	// metadata; Actual describes what was found instead.
	Declared string
	Actual   string
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return fmt.Sprintf("peopledao: column %q declared %s but found %s", e.Column, e.Declared, e.Actual)
}

// UnableToRetrieveError is the terminal read failure.
type UnableToRetrieveError struct {
	// Operation names the DAO operation that failed.
	Operation string

	// Attempts is the number of statements issued, including the first.
	Attempts int

	// Cause is the last observed failure.
	Cause error
}

// Error implements the error interface.
func (e *UnableToRetrieveError) Error() string {
	return fmt.Sprintf("peopledao: unable to retrieve %s after %d attempt(s): %s",
		e.Operation, e.Attempts, causeString(e.Cause))
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *UnableToRetrieveError) Unwrap() error {
	return e.Cause
}

// UnableToStoreError is the terminal write failure. Writes are never retried.
type UnableToStoreError struct {
	// Operation names the DAO operation that failed.
	Operation string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *UnableToStoreError) Error() string {
	return "peopledao: unable to store " + e.Operation + ": " + causeString(e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *UnableToStoreError) Unwrap() error {
	return e.Cause
}

func causeString(err error) string {
	if err == nil {
		return "<nil>"
	}

	return err.Error()
}
