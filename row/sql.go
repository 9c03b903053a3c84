package row

import (
	"database/sql"
	"fmt"
)

// FromSQL scans the current row of rows into Values. Call it after a
// successful rows.Next.
func FromSQL(rows *sql.Rows) (Values, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("row: reading columns: %w", err)
	}

	vals := make(Values, len(cols))
	dest := make([]any, len(cols))

	for i := range vals {
		dest[i] = &vals[i]
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("row: scanning: %w", err)
	}

	return vals, nil
}

// CollectSQL reads every remaining row of rows with read and closes rows.
func CollectSQL[T any](rows *sql.Rows, read func(Reader) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T

	for rows.Next() {
		vals, err := FromSQL(rows)
		if err != nil {
			return nil, err
		}

		item, err := read(vals)
		if err != nil {
			return nil, err
		}

		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row: iterating: %w", err)
	}

	return out, nil
}
