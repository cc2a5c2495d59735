package postgres

import "github.com/lib/pq"

// int64Array adapts an id slice for use with = ANY($n).
func int64Array(ids []int64) any {
	return pq.Array(ids)
}
