package row

import (
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Values is a row held in memory, one driver value per column.
type Values []any

var _ Reader = Values(nil)

func (v Values) get(i int) (any, error) {
	if i < 0 || i >= len(v) {
		return nil, columnError(i, nil, "any", ErrIndex)
	}

	if v[i] == nil {
		return nil, columnError(i, nil, "any", ErrNull)
	}

	return v[i], nil
}

// text is get with []byte values turned into strings, the way text
// protocols deliver them.
func (v Values) text(i int) (any, error) {
	x, err := v.get(i)
	if b, ok := x.([]byte); ok {
		return string(b), nil
	}

	return x, err
}

// GetBoolean reads a bool. Integers are true when non-zero.
func (v Values) GetBoolean(i int) (bool, error) {
	x, err := v.text(i)
	if err != nil {
		return false, err
	}

	switch t := x.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return false, columnError(i, x, "bool", ErrType)
		}

		return b, nil
	}

	if n, ok := toInt64(x); ok {
		return n != 0, nil
	}

	return false, columnError(i, x, "bool", ErrType)
}

// GetByte reads a byte.
func (v Values) GetByte(i int) (byte, error) {
	n, err := v.integer(i, "byte", 0, math.MaxUint8)
	return byte(n), err
}

// GetChar reads a rune from an integer code point or a one-rune string.
func (v Values) GetChar(i int) (rune, error) {
	x, err := v.text(i)
	if err != nil {
		return 0, err
	}

	s, ok := x.(string)
	if !ok {
		n, err := v.integer(i, "rune", 0, utf8.MaxRune)
		return rune(n), err
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, columnError(i, x, "rune", ErrType)
	}

	return r, nil
}

// GetDateTime reads a time.Time. Strings are parsed as RFC 3339.
func (v Values) GetDateTime(i int) (time.Time, error) {
	x, err := v.text(i)
	if err != nil {
		return time.Time{}, err
	}

	var s string

	switch t := x.(type) {
	case time.Time:
		return t, nil
	case string:
		s = t
	default:
		return time.Time{}, columnError(i, x, "time.Time", ErrType)
	}

	tm, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, columnError(i, x, "time.Time", err)
	}

	return tm, nil
}

// GetDecimal reads a decimal.Decimal.
func (v Values) GetDecimal(i int) (decimal.Decimal, error) {
	x, err := v.text(i)
	if err != nil {
		return decimal.Zero, err
	}

	switch t := x.(type) {
	case decimal.Decimal:
		return t, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, columnError(i, x, "decimal.Decimal", err)
		}

		return d, nil
	}

	if n, ok := toInt64(x); ok {
		return decimal.NewFromInt(n), nil
	}

	return decimal.Zero, columnError(i, x, "decimal.Decimal", ErrType)
}

// GetDouble reads a float64.
func (v Values) GetDouble(i int) (float64, error) {
	x, err := v.text(i)
	if err != nil {
		return 0, err
	}

	switch t := x.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case decimal.Decimal:
		return t.InexactFloat64(), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, columnError(i, x, "float64", err)
		}

		return f, nil
	}

	if n, ok := toInt64(x); ok {
		return float64(n), nil
	}

	return 0, columnError(i, x, "float64", ErrType)
}

// GetFloat reads a float32. Finite values beyond float32 range fail.
func (v Values) GetFloat(i int) (float32, error) {
	f, err := v.GetDouble(i)
	if err != nil {
		return 0, err
	}

	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, columnError(i, v[i], "float32", ErrRange)
	}

	return float32(f), nil
}

// GetGuid reads a uuid.UUID from its binary or text form.
func (v Values) GetGuid(i int) (uuid.UUID, error) {
	x, err := v.get(i)
	if err != nil {
		return uuid.Nil, err
	}

	var (
		id uuid.UUID
		pe error
	)

	switch t := x.(type) {
	case uuid.UUID:
		return t, nil
	case [16]byte:
		return uuid.UUID(t), nil
	case string:
		id, pe = uuid.Parse(t)
	case []byte:
		if len(t) == 16 {
			id, pe = uuid.FromBytes(t)
		} else {
			id, pe = uuid.ParseBytes(t)
		}
	default:
		return uuid.Nil, columnError(i, x, "uuid.UUID", ErrType)
	}

	if pe != nil {
		return uuid.Nil, columnError(i, x, "uuid.UUID", pe)
	}

	return id, nil
}

// GetInt16 reads an int16.
func (v Values) GetInt16(i int) (int16, error) {
	n, err := v.integer(i, "int16", math.MinInt16, math.MaxInt16)
	return int16(n), err
}

// GetInt32 reads an int32.
func (v Values) GetInt32(i int) (int32, error) {
	n, err := v.integer(i, "int32", math.MinInt32, math.MaxInt32)
	return int32(n), err
}

// GetInt64 reads an int64.
func (v Values) GetInt64(i int) (int64, error) {
	return v.integer(i, "int64", math.MinInt64, math.MaxInt64)
}

// GetString reads a string.
func (v Values) GetString(i int) (string, error) {
	x, err := v.text(i)
	if err != nil {
		return "", err
	}

	switch t := x.(type) {
	case string:
		return t, nil
	case uuid.UUID:
		return t.String(), nil
	case decimal.Decimal:
		return t.String(), nil
	}

	return "", columnError(i, x, "string", ErrType)
}

// GetTimeSpan reads a time.Duration. Integers are nanoseconds; strings use
// time.ParseDuration syntax.
func (v Values) GetTimeSpan(i int) (time.Duration, error) {
	x, err := v.text(i)
	if err != nil {
		return 0, err
	}

	switch t := x.(type) {
	case time.Duration:
		return t, nil
	case string:
		d, err := time.ParseDuration(t)
		if err != nil {
			return 0, columnError(i, x, "time.Duration", err)
		}

		return d, nil
	}

	if n, ok := toInt64(x); ok {
		return time.Duration(n), nil
	}

	return 0, columnError(i, x, "time.Duration", ErrType)
}

// integer reads an integer column and checks it against [lo, hi].
// Integral strings are parsed.
func (v Values) integer(i int, kind string, lo, hi int64) (int64, error) {
	x, err := v.text(i)
	if err != nil {
		return 0, err
	}

	n, ok := toInt64(x)
	if !ok {
		s, isText := x.(string)
		if !isText {
			if isUnsigned64Overflow(x) {
				return 0, columnError(i, x, kind, ErrRange)
			}

			return 0, columnError(i, x, kind, ErrType)
		}

		n, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, columnError(i, x, kind, err)
		}
	}

	if n < lo || n > hi {
		return 0, columnError(i, x, kind, ErrRange)
	}

	return n, nil
}

// toInt64 converts any Go integer that fits into an int64.
func toInt64(x any) (int64, bool) {
	switch t := x.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), uint64(t) <= math.MaxInt64
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), t <= math.MaxInt64
	}

	return 0, false
}

func isUnsigned64Overflow(x any) bool {
	switch t := x.(type) {
	case uint:
		return uint64(t) > math.MaxInt64
	case uint64:
		return t > math.MaxInt64
	}

	return false
}
