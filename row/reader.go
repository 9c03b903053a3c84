package row

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reader reads typed values from the columns of the current row by
// position.
type Reader interface {
	GetBoolean(i int) (bool, error)
	GetByte(i int) (byte, error)
	GetChar(i int) (rune, error)
	GetDateTime(i int) (time.Time, error)
	GetDecimal(i int) (decimal.Decimal, error)
	GetDouble(i int) (float64, error)
	GetFloat(i int) (float32, error)
	GetGuid(i int) (uuid.UUID, error)
	GetInt16(i int) (int16, error)
	GetInt32(i int) (int32, error)
	GetInt64(i int) (int64, error)
	GetString(i int) (string, error)
	GetTimeSpan(i int) (time.Duration, error)
}
