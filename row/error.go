package row

import (
	"errors"
	"fmt"
)

var (
	// ErrIndex is returned for a column position outside the row.
	ErrIndex = errors.New("column index out of range")
	// ErrNull is returned when a column holds NULL.
	ErrNull = errors.New("column is null")
	// ErrType is returned when a value cannot be converted to the requested kind.
	ErrType = errors.New("unsupported column type")
	// ErrRange is returned when a value does not fit the requested kind.
	ErrRange = errors.New("value out of range")
)

// Error reports a failed read of one model field.
type Error struct {
	Model  string
	Field  string
	Column int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("row: reading %s.%s from column %d: %v", e.Model, e.Field, e.Column, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FieldError wraps err with the model field and column it was read for.
func FieldError(model, field string, column int, err error) error {
	return &Error{Model: model, Field: field, Column: column, Err: err}
}

// columnError describes a conversion failure of a single column.
func columnError(i int, v any, kind string, err error) error {
	return fmt.Errorf("column %d: %T as %s: %w", i, v, kind, err)
}
