package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsistencyString(t *testing.T) {
	assert.Equal(t, "QUORUM", Quorum.String())
	assert.Equal(t, "ONE", One.String())
	assert.Equal(t, "LOCAL_QUORUM", LocalQuorum.String())
	assert.Equal(t, "UNKNOWN", Consistency(0xFF).String())
}

func TestParseConsistency(t *testing.T) {
	tests := []struct {
		in   string
		want Consistency
	}{
		{"QUORUM", Quorum},
		{"quorum", Quorum},
		{"ONE", One},
		{"local_quorum", LocalQuorum},
		{"LocalQuorum", LocalQuorum},
		{" two ", Two},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConsistency(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseConsistency("MOST")
	require.ErrorIs(t, err, ErrInvalidConsistency)
}

func TestConsistencyOrdering(t *testing.T) {
	require.Less(t, One, Two)
	require.Less(t, Two, Quorum)
	require.Less(t, Quorum, All)
	require.Equal(t, One, LowestRead)
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "timeout", FailureTimeout.String())
	assert.Equal(t, "unavailable", FailureUnavailable.String())
	assert.Equal(t, "transport", FailureTransport.String())
}

func TestDecisions(t *testing.T) {
	d := RetryAt(One)
	require.True(t, d.Retry)
	require.Equal(t, One, d.Consistency)

	require.False(t, GiveUp().Retry)
}

func TestUnableToRetrieveError(t *testing.T) {
	cause := &TimeoutError{Consistency: One, Cause: errors.New("read timeout")}
	err := &UnableToRetrieveError{Operation: "retrieveAll", Attempts: 2, Cause: cause}

	assert.Contains(t, err.Error(), "retrieveAll")
	assert.Contains(t, err.Error(), "2 attempt")
	assert.Contains(t, err.Error(), "read timeout")

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, One, timeout.Consistency)
}

func TestUnableToStoreError(t *testing.T) {
	cause := &TransportError{Cause: errors.New("no hosts")}
	err := &UnableToStoreError{Operation: "storePerson", Cause: cause}

	assert.Contains(t, err.Error(), "storePerson")
	assert.Contains(t, err.Error(), "no hosts")

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
}

func TestConnectionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ConnectionError{Host: "localhost", Port: 9042, Cause: cause}

	assert.Contains(t, err.Error(), "localhost:9042")
	assert.True(t, errors.Is(err, cause))
}

func TestPrepareError(t *testing.T) {
	cause := errors.New("line 1:0 no viable alternative")
	err := &PrepareError{Operation: "storePerson", Template: "insert into", Cause: cause}

	assert.Contains(t, err.Error(), "storePerson")
	assert.Contains(t, err.Error(), "no viable alternative")
	assert.True(t, errors.Is(err, cause))
}

func TestBindArityAndMappingErrors(t *testing.T) {
	bind := &BindArityError{Operation: "retrievePeopleByName", Expected: 2, Got: 1}
	assert.Contains(t, bind.Error(), "expects 2 values, got 1")

	mapping := &MappingError{Column: "age", Declared: "int", Actual: "text"}
	assert.Contains(t, mapping.Error(), `column "age" declared int but found text`)
}

func TestNilCause(t *testing.T) {
	err := &TransportError{}
	assert.Contains(t, err.Error(), "<nil>")
}
