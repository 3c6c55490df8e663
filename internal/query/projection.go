package query

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// ErrMissingField indicates that a projection could not read a required field.
var ErrMissingField = errors.New("missing projection field")

// Row is one result row keyed by select alias.
type Row map[string]any

// Field is one select-list entry.
type Field struct {
	Expr  string
	Alias string
}

// As selects col under alias. An empty alias keeps the column name.
func As(col Column, alias string) Field {
	if alias == "" {
		alias = col.Name
	}
	return Field{Expr: col.String(), Alias: alias}
}

// SQL renders the field as a select-list entry.
func (f Field) SQL() string {
	return f.Expr + " AS " + f.Alias
}

// Projection maps rows selected by Fields into values of type T.
type Projection[T any] struct {
	Fields []Field
	Build  func(Row) (T, error)
}

// Select returns the select list of the projection.
func (p Projection[T]) Select() []string {
	cols := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		cols[i] = f.SQL()
	}
	return cols
}

// Map converts rows in order, stopping at the first row that fails to build.
func (p Projection[T]) Map(rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, r := range rows {
		v, err := p.Build(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Reader returns a RowReader over r.
func (r Row) Reader() *RowReader {
	return &RowReader{row: r}
}

// value returns the driver value for alias with pointer and interface
// wrappers removed. present is false when the alias is not in the row.
func (r Row) value(alias string) (v any, present bool) {
	raw, ok := r[alias]
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, true
	}
	if b, ok := rv.Interface().([]byte); ok {
		return string(b), true
	}
	return rv.Interface(), true
}

// RowReader reads typed values from a Row and keeps the first error.
// Required readers fail when the alias is absent or NULL; Null readers fail
// only when the alias is absent.
type RowReader struct {
	row Row
	err error
}

// Err returns the first error encountered.
func (rr *RowReader) Err() error {
	return rr.err
}

func (rr *RowReader) fail(err error) {
	if rr.err == nil {
		rr.err = err
	}
}

func (rr *RowReader) required(alias string) (any, bool) {
	v, present := rr.row.value(alias)
	if !present || v == nil {
		rr.fail(fmt.Errorf("%w: %s", ErrMissingField, alias))
		return nil, false
	}
	return v, true
}

func (rr *RowReader) nullable(alias string) (any, bool) {
	v, present := rr.row.value(alias)
	if !present {
		rr.fail(fmt.Errorf("%w: %s", ErrMissingField, alias))
		return nil, false
	}
	return v, v != nil
}

// Int64 reads a required integer.
func (rr *RowReader) Int64(alias string) int64 {
	v, ok := rr.required(alias)
	if !ok {
		return 0
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		rr.fail(fmt.Errorf("field %s: %w", alias, err))
	}
	return n
}

// Int reads a required integer.
func (rr *RowReader) Int(alias string) int {
	return int(rr.Int64(alias))
}

// Float64 reads a required number.
func (rr *RowReader) Float64(alias string) float64 {
	v, ok := rr.required(alias)
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		rr.fail(fmt.Errorf("field %s: %w", alias, err))
	}
	return f
}

// String reads a required string.
func (rr *RowReader) String(alias string) string {
	v, ok := rr.required(alias)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		rr.fail(fmt.Errorf("field %s: %w", alias, err))
	}
	return s
}

// NullString reads a nullable string.
func (rr *RowReader) NullString(alias string) *string {
	v, ok := rr.nullable(alias)
	if !ok {
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		rr.fail(fmt.Errorf("field %s: %w", alias, err))
		return nil
	}
	return &s
}

// NullInt64 reads a nullable integer.
func (rr *RowReader) NullInt64(alias string) *int64 {
	v, ok := rr.nullable(alias)
	if !ok {
		return nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		rr.fail(fmt.Errorf("field %s: %w", alias, err))
		return nil
	}
	return &n
}
