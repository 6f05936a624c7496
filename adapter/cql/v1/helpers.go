package v1

import (
	"context"
	"errors"
	"strings"

	"github.com/gocql/gocql"

	"github.com/arloliu/peopledao/adapter/cql"
	"github.com/arloliu/peopledao/types"
)

// ToGocqlConsistency converts a peopledao Consistency to gocql.Consistency.
//
// Parameters:
//   - c: peopledao consistency level
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Consistency = v1.ToGocqlConsistency(cql.Quorum)
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to peopledao Consistency.
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// FromGocqlType converts gocql type metadata to a peopledao column type.
//
// Text-like types (ascii, varchar, text) all map to TypeText, and both
// uuid flavours map to TypeUUID. Anything the mapper does not handle is
// TypeUnknown.
//
// Parameters:
//   - info: gocql type metadata
//
// Returns:
//   - cql.ColumnType: The peopledao column type
func FromGocqlType(info gocql.TypeInfo) cql.ColumnType {
	if info == nil {
		return cql.TypeUnknown
	}

	switch info.Type() {
	case gocql.TypeAscii, gocql.TypeVarchar, gocql.TypeText:
		return cql.TypeText
	case gocql.TypeInt:
		return cql.TypeInt
	case gocql.TypeBigInt, gocql.TypeCounter:
		return cql.TypeBigInt
	case gocql.TypeBoolean:
		return cql.TypeBoolean
	case gocql.TypeDouble:
		return cql.TypeDouble
	case gocql.TypeTimestamp:
		return cql.TypeTimestamp
	case gocql.TypeUUID, gocql.TypeTimeUUID:
		return cql.TypeUUID
	case gocql.TypeBlob:
		return cql.TypeBlob
	case gocql.TypeSet:
		coll, ok := info.(gocql.CollectionType)
		if !ok {
			return cql.TypeUnknown
		}
		switch FromGocqlType(coll.Elem) {
		case cql.TypeText:
			return cql.TypeSetText
		case cql.TypeTimestamp:
			return cql.TypeSetTimestamp
		}
	}

	return cql.TypeUnknown
}

func fromGocqlColumns(cols []gocql.ColumnInfo) []cql.ColumnInfo {
	if len(cols) == 0 {
		return nil
	}

	result := make([]cql.ColumnInfo, len(cols))
	for idx, col := range cols {
		result[idx] = cql.ColumnInfo{
			Keyspace: col.Keyspace,
			Table:    col.Table,
			Name:     col.Name,
			Type:     FromGocqlType(col.TypeInfo),
		}
	}

	return result
}

// translateError maps gocql failures onto the peopledao session error kinds.
func translateError(err error, c cql.Consistency) error {
	if err == nil {
		return nil
	}

	var (
		readTimeout  *gocql.RequestErrReadTimeout
		writeTimeout *gocql.RequestErrWriteTimeout
		unavailable  *gocql.RequestErrUnavailable
	)

	switch {
	case errors.As(err, &readTimeout), errors.As(err, &writeTimeout):
		return &types.TimeoutError{Consistency: c, Cause: err}
	case errors.As(err, &unavailable):
		return &types.UnavailableError{
			Consistency: c,
			Required:    unavailable.Required,
			Alive:       unavailable.Alive,
			Cause:       err,
		}
	case errors.Is(err, gocql.ErrTimeoutNoResponse), errors.Is(err, context.DeadlineExceeded):
		return &types.TimeoutError{Consistency: c, Cause: err}
	case errors.Is(err, context.Canceled):
		return err
	default:
		return &types.TransportError{Cause: err}
	}
}

// isDML mirrors gocql's rule for which statements it prepares.
func isDML(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "select", "insert", "update", "delete", "batch":
		return true
	}

	return false
}
