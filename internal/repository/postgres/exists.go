package postgres

import (
	"context"
	"fmt"
)

// existsExcluding reports whether any row in table has the given value in
// column, excluding the row (or owner) identified by excludeColumn =
// excludeID. This is the shared shape behind every application-level
// uniqueness check; pass excludeID = 0 on create so nothing is excluded.
//
// table, column and excludeColumn are always compile-time constants from
// this package, never user input.
func existsExcluding(ctx context.Context, q Querier, table, column, excludeColumn, extraWhere, value string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2%s)",
		table, column, excludeColumn, extraWhere,
	)

	var exists bool
	if err := q.QueryRowContext(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
