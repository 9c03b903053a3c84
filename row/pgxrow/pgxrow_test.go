package pgxrow

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orm-generator/row"
)

func TestNormalize(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	vals, err := Normalize([]any{
		pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true},
		pgtype.Interval{Microseconds: 1_500_000, Days: 1, Valid: true},
		pgtype.UUID{Bytes: id, Valid: true},
		[16]byte(id),
		pgtype.Text{String: "hi", Valid: true},
		pgtype.Int4{Int32: 7, Valid: true},
		pgtype.Timestamptz{Time: ts, Valid: true},
		pgtype.Text{},
		int64(42),
	})
	require.NoError(t, err)

	d, err := vals.GetDecimal(0)
	require.NoError(t, err)
	assert.Equal(t, "123.45", d.String())

	span, err := vals.GetTimeSpan(1)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour+1500*time.Millisecond, span)

	for _, i := range []int{2, 3} {
		got, err := vals.GetGuid(i)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	s, err := vals.GetString(4)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	n, err := vals.GetInt16(5)
	require.NoError(t, err)
	assert.Equal(t, int16(7), n)

	when, err := vals.GetDateTime(6)
	require.NoError(t, err)
	assert.True(t, ts.Equal(when))

	_, err = vals.GetString(7)
	require.ErrorIs(t, err, row.ErrNull)

	count, err := vals.GetInt64(8)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize([]any{pgtype.Interval{Months: 1, Valid: true}})
	require.ErrorIs(t, err, ErrMonths)

	_, err = Normalize([]any{pgtype.Numeric{NaN: true, Valid: true}})
	require.ErrorIs(t, err, row.ErrRange)

	_, err = Normalize([]any{pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}})
	require.ErrorIs(t, err, row.ErrRange)
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r fakeRow) Scan(...any) error                            { return errors.New("not implemented") }
func (r fakeRow) Values() ([]any, error)                       { return r.vals, r.err }
func (r fakeRow) RawValues() [][]byte                          { return nil }

var _ pgx.CollectableRow = fakeRow{}

type labeled struct {
	ID    int32
	Label string
}

func readLabeled(r row.Reader) (labeled, error) {
	id, err := r.GetInt32(0)
	if err != nil {
		return labeled{}, err
	}

	label, err := r.GetString(1)
	if err != nil {
		return labeled{}, err
	}

	return labeled{ID: id, Label: label}, nil
}

func TestFromRows(t *testing.T) {
	vals, err := FromRows(fakeRow{vals: []any{int32(7), pgtype.Text{String: "x", Valid: true}}})
	require.NoError(t, err)
	assert.Equal(t, row.Values{int32(7), "x"}, vals)

	_, err = FromRows(fakeRow{err: errors.New("conn closed")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conn closed")
}

func TestRowTo(t *testing.T) {
	to := RowTo(readLabeled)

	got, err := to(fakeRow{vals: []any{int64(7), "seven"}})
	require.NoError(t, err)
	assert.Equal(t, labeled{ID: 7, Label: "seven"}, got)

	_, err = to(fakeRow{vals: []any{int64(7), nil}})
	require.ErrorIs(t, err, row.ErrNull)
}
