// Package types provides shared types and errors for the peopledao library.
//
// This is a "leaf" package with no imports from other peopledao packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"errors"
	"strings"
)

// Consistency represents the Cassandra consistency level.
//
// The numeric values are the CQL wire codes, so a Consistency converts
// directly to the driver's own consistency type.
type Consistency uint16

// Common consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// LowestRead is the weakest consistency level a read may be issued at.
//
// ANY is only meaningful for writes, so reads bottom out at ONE.
const LowestRead = One

var consistencyNames = map[Consistency]string{
	Any:         "ANY",
	One:         "ONE",
	Two:         "TWO",
	Three:       "THREE",
	Quorum:      "QUORUM",
	All:         "ALL",
	LocalQuorum: "LOCAL_QUORUM",
	EachQuorum:  "EACH_QUORUM",
	Serial:      "SERIAL",
	LocalSerial: "LOCAL_SERIAL",
	LocalOne:    "LOCAL_ONE",
}

// String returns the CQL name of the consistency level, e.g. "QUORUM".
func (c Consistency) String() string {
	if name, ok := consistencyNames[c]; ok {
		return name
	}

	return "UNKNOWN"
}

// ParseConsistency parses a consistency level name.
//
// Matching is case-insensitive and accepts both "LOCAL_QUORUM" and
// "localquorum" spellings.
//
// Parameters:
//   - s: Consistency name
//
// Returns:
//   - Consistency: The parsed level
//   - error: ErrInvalidConsistency if the name is unknown
func ParseConsistency(s string) (Consistency, error) {
	want := normalizeConsistencyName(s)
	for c, name := range consistencyNames {
		if normalizeConsistencyName(name) == want {
			return c, nil
		}
	}

	return 0, errors.Join(ErrInvalidConsistency, errors.New("peopledao: unknown consistency "+s))
}

func normalizeConsistencyName(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "_", "")
}

// FailureKind classifies a failed statement execution.
type FailureKind int

const (
	// FailureTransport is a connection-level failure, or anything the
	// translator does not recognise. Never retried.
	FailureTransport FailureKind = iota
	// FailureTimeout means the request exceeded its deadline or the
	// coordinator reported a read/write timeout. Transient.
	FailureTimeout
	// FailureUnavailable means too few replicas were alive to satisfy
	// the requested consistency.
	FailureUnavailable
)

// String returns a lower-case name suitable for metric labels.
func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureUnavailable:
		return "unavailable"
	default:
		return "transport"
	}
}

// Decision is the outcome of a retry policy evaluation.
type Decision struct {
	// Retry reports whether another attempt should be issued.
	Retry bool

	// Consistency is the level for the next attempt. Only meaningful
	// when Retry is true.
	Consistency Consistency
}

// RetryAt returns a decision to retry at the given consistency.
func RetryAt(c Consistency) Decision {
	return Decision{Retry: true, Consistency: c}
}

// GiveUp returns a decision to stop retrying.
func GiveUp() Decision {
	return Decision{}
}
