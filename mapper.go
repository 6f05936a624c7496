package peopledao

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/peopledao/adapter/cql"
	"github.com/arloliu/peopledao/types"
)

// ColumnSpec declares one column of a result schema.
type ColumnSpec struct {
	Name string
	Type cql.ColumnType
}

// Schema is the explicit contract between a table and the entity mapped from it.
//
// Columns are ordered and named. Result columns not named by the schema are
// ignored; schema columns absent from the result map to zero values.
type Schema struct {
	Table   string
	Columns []ColumnSpec
}

// Column returns the spec of the named column.
func (s Schema) Column(name string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}

	return ColumnSpec{}, false
}

// Check compares result metadata with the schema.
//
// Columns whose metadata type is empty or unknown are not checked; the
// typed accessors on Row still validate their values.
//
// Returns:
//   - error: *types.MappingError for the first incompatible column
func (s Schema) Check(columns []cql.ColumnInfo) error {
	for _, col := range columns {
		spec, ok := s.Column(col.Name)
		if !ok || col.Type == "" || col.Type == cql.TypeUnknown {
			continue
		}
		if col.Type != spec.Type {
			return &types.MappingError{
				Column:   col.Name,
				Declared: string(spec.Type),
				Actual:   string(col.Type),
			}
		}
	}

	return nil
}

// Row is one result row seen through a schema.
type Row struct {
	values map[string]any
}

// NewRow wraps a row map.
func NewRow(values map[string]any) Row {
	return Row{values: values}
}

// Text returns a text column; missing or null is "".
func (r Row) Text(column string) (string, error) {
	switch v := r.values[column].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case *string:
		if v == nil {
			return "", nil
		}
		return *v, nil
	default:
		return "", mismatch(column, cql.TypeText, v)
	}
}

// Int returns an int column; missing or null is 0.
func (r Row) Int(column string) (int, error) {
	switch v := r.values[column].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, mismatch(column, cql.TypeInt, v)
		}
		return int(v), nil
	default:
		return 0, mismatch(column, cql.TypeInt, v)
	}
}

// TimestampSet returns a set<timestamp> column; missing or null is empty.
func (r Row) TimestampSet(column string) ([]time.Time, error) {
	switch v := r.values[column].(type) {
	case nil:
		return nil, nil
	case []time.Time:
		return v, nil
	case map[time.Time]struct{}:
		out := make([]time.Time, 0, len(v))
		for t := range v {
			out = append(out, t)
		}
		return out, nil
	default:
		return nil, mismatch(column, cql.TypeSetTimestamp, v)
	}
}

func mismatch(column string, declared cql.ColumnType, v any) error {
	return &types.MappingError{
		Column:   column,
		Declared: string(declared),
		Actual:   fmt.Sprintf("%T", v),
	}
}

// MapRows converts rows into entities, preserving datastore order.
//
// Parameters:
//   - rows: Result set to map
//   - schema: Expected columns
//   - fn: Converts one row; errors abort mapping
//
// Returns:
//   - []T: One entity per row
//   - error: *types.MappingError on the first incompatible column
func MapRows[T any](rows *cql.Rows, schema Schema, fn func(Row) (T, error)) ([]T, error) {
	if rows == nil {
		return nil, nil
	}

	if err := schema.Check(rows.Columns); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows.Data))
	for _, data := range rows.Data {
		v, err := fn(NewRow(data))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
