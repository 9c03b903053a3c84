// Package pgxrow adapts pgx result rows to row.Reader.
package pgxrow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"orm-generator/row"
)

// ErrMonths is returned for intervals with a month component, which has no
// fixed duration.
var ErrMonths = errors.New("pgxrow: interval with months cannot be read as a duration")

// FromRows returns the current row of rows as row.Values. Call it after a
// successful rows.Next.
func FromRows(rows pgx.CollectableRow) (row.Values, error) {
	vals, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("pgxrow: reading values: %w", err)
	}

	return Normalize(vals)
}

// RowTo adapts a generated FromRow function to pgx.CollectRows:
//
//	models, err := pgx.CollectRows(rows, pgxrow.RowTo(shapes.DbModelFromRow))
func RowTo[T any](read func(row.Reader) (T, error)) pgx.RowToFunc[T] {
	return func(r pgx.CollectableRow) (T, error) {
		vals, err := FromRows(r)
		if err != nil {
			var zero T
			return zero, err
		}

		return read(vals)
	}
}

// Normalize converts pgtype wrapper values into the plain Go values
// row.Values understands. Invalid (NULL) wrappers become nil.
func Normalize(vals []any) (row.Values, error) {
	out := make(row.Values, len(vals))

	for i, v := range vals {
		n, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("pgxrow: column %d: %w", i, err)
		}

		out[i] = n
	}

	return out, nil
}

func normalize(v any) (any, error) {
	switch t := v.(type) {
	case pgtype.Numeric:
		return numeric(t)
	case pgtype.Interval:
		return interval(t)
	case pgtype.UUID:
		return valid(t.Valid, uuid.UUID(t.Bytes)), nil
	case pgtype.Text:
		return valid(t.Valid, t.String), nil
	case pgtype.Bool:
		return valid(t.Valid, t.Bool), nil
	case pgtype.Int2:
		return valid(t.Valid, t.Int16), nil
	case pgtype.Int4:
		return valid(t.Valid, t.Int32), nil
	case pgtype.Int8:
		return valid(t.Valid, t.Int64), nil
	case pgtype.Float4:
		return valid(t.Valid, t.Float32), nil
	case pgtype.Float8:
		return valid(t.Valid, t.Float64), nil
	case pgtype.Timestamptz:
		return valid(t.Valid, t.Time), nil
	case pgtype.Timestamp:
		return valid(t.Valid, t.Time), nil
	case pgtype.Date:
		return valid(t.Valid, t.Time), nil
	case [16]byte:
		return uuid.UUID(t), nil
	}

	return v, nil
}

func valid(ok bool, v any) any {
	if !ok {
		return nil
	}

	return v
}

func numeric(n pgtype.Numeric) (any, error) {
	if !n.Valid {
		return nil, nil
	}

	if n.NaN {
		return nil, fmt.Errorf("numeric NaN: %w", row.ErrRange)
	}

	if n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return nil, fmt.Errorf("numeric %s: %w", n.InfinityModifier, row.ErrRange)
	}

	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

func interval(iv pgtype.Interval) (any, error) {
	if !iv.Valid {
		return nil, nil
	}

	if iv.Months != 0 {
		return nil, ErrMonths
	}

	return time.Duration(iv.Microseconds)*time.Microsecond + time.Duration(iv.Days)*24*time.Hour, nil
}
