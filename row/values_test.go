package row

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues_Integers(t *testing.T) {
	v := Values{int64(7), int64(math.MaxInt32 + 1), "-12", []byte("300"), uint64(math.MaxUint64), 1.5}

	n32, err := v.GetInt32(0)
	require.NoError(t, err)
	assert.Equal(t, int32(7), n32)

	_, err = v.GetInt32(1)
	require.ErrorIs(t, err, ErrRange)

	n16, err := v.GetInt16(2)
	require.NoError(t, err)
	assert.Equal(t, int16(-12), n16)

	_, err = v.GetByte(3)
	require.ErrorIs(t, err, ErrRange)

	n64, err := v.GetInt64(3)
	require.NoError(t, err)
	assert.Equal(t, int64(300), n64)

	_, err = v.GetInt64(4)
	require.ErrorIs(t, err, ErrRange)

	_, err = v.GetInt64(5)
	require.ErrorIs(t, err, ErrType)
}

func TestValues_IndexAndNull(t *testing.T) {
	v := Values{nil}

	_, err := v.GetString(0)
	require.ErrorIs(t, err, ErrNull)

	_, err = v.GetString(1)
	require.ErrorIs(t, err, ErrIndex)

	_, err = v.GetInt32(-1)
	require.ErrorIs(t, err, ErrIndex)
}

func TestValues_Text(t *testing.T) {
	id := uuid.New()
	v := Values{"abc", []byte("xyz"), id, decimal.RequireFromString("1.50"), "é", 'λ', "ab"}

	s, err := v.GetString(0)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	s, err = v.GetString(1)
	require.NoError(t, err)
	assert.Equal(t, "xyz", s)

	s, err = v.GetString(2)
	require.NoError(t, err)
	assert.Equal(t, id.String(), s)

	s, err = v.GetString(3)
	require.NoError(t, err)
	assert.Equal(t, "1.5", s)

	c, err := v.GetChar(4)
	require.NoError(t, err)
	assert.Equal(t, 'é', c)

	c, err = v.GetChar(5)
	require.NoError(t, err)
	assert.Equal(t, 'λ', c)

	_, err = v.GetChar(6)
	require.ErrorIs(t, err, ErrType)
}

func TestValues_Floats(t *testing.T) {
	v := Values{float64(2.5), float32(1.25), int64(3), "4.75", math.MaxFloat64, decimal.RequireFromString("0.5")}

	d, err := v.GetDouble(0)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, d, 0)

	f, err := v.GetFloat(1)
	require.NoError(t, err)
	assert.InDelta(t, float32(1.25), f, 0)

	d, err = v.GetDouble(2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 0)

	f, err = v.GetFloat(3)
	require.NoError(t, err)
	assert.InDelta(t, float32(4.75), f, 0)

	_, err = v.GetFloat(4)
	require.ErrorIs(t, err, ErrRange)

	d, err = v.GetDouble(5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 0)
}

func TestValues_Decimal(t *testing.T) {
	v := Values{"12.340", []byte("-1"), int64(5), 0.25, "nope"}

	for i, want := range []string{"12.34", "-1", "5", "0.25"} {
		d, err := v.GetDecimal(i)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString(want).Equal(d), "column %d: %s", i, d)
	}

	_, err := v.GetDecimal(4)
	require.Error(t, err)
}

func TestValues_Guid(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	v := Values{id, [16]byte(id), id[:], id.String(), []byte(id.String()), "not-a-uuid", 12}

	for i := range 5 {
		got, err := v.GetGuid(i)
		require.NoError(t, err, "column %d", i)
		assert.Equal(t, id, got)
	}

	_, err := v.GetGuid(5)
	require.Error(t, err)

	_, err = v.GetGuid(6)
	require.ErrorIs(t, err, ErrType)
}

func TestValues_TimeAndSpan(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	v := Values{now, "2024-05-06T07:08:09Z", 90 * time.Second, int64(time.Millisecond), "1h30m", true}

	for i := range 2 {
		got, err := v.GetDateTime(i)
		require.NoError(t, err)
		assert.True(t, now.Equal(got))
	}

	span, err := v.GetTimeSpan(2)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, span)

	span, err = v.GetTimeSpan(3)
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, span)

	span, err = v.GetTimeSpan(4)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, span)

	_, err = v.GetDateTime(5)
	require.ErrorIs(t, err, ErrType)
}

func TestValues_Boolean(t *testing.T) {
	v := Values{true, "false", int64(1), []byte("t"), 2.0}

	for i, want := range []bool{true, false, true, true} {
		got, err := v.GetBoolean(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := v.GetBoolean(4)
	require.ErrorIs(t, err, ErrType)
}

func TestFieldError(t *testing.T) {
	cause := Values{nil}
	_, readErr := cause.GetInt32(0)

	err := FieldError("Point", "X", 2, readErr)

	var rowErr *Error
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, "Point", rowErr.Model)
	assert.Equal(t, "X", rowErr.Field)
	assert.Equal(t, 2, rowErr.Column)
	require.ErrorIs(t, err, ErrNull)
	assert.Contains(t, err.Error(), "row: reading Point.X from column 2")
}
