// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reindex implements the bulk reindex driver: a key-enumeration loop
partitions a core's primary keys into fixed-size windows and dispatches
each window to a fixed worker pool, the driver's sole parallelism
primitive.
*/
package reindex

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Rows is the narrow slice of pgx.Rows the window enumerator consumes,
// mirroring [materialize.Rows] and [router.Rows].
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier is the slice of *pgxpool.Pool the enumerator needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// poolQuerier adapts *pgxpool.Pool to [Querier].
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// nextWindow returns up to size primary keys from table strictly greater
// than after, in ascending order — one fixed-size window of the bulk
// reindex key-enumeration driver.
func nextWindow(ctx context.Context, db Querier, table string, after int64, size int) ([]int64, error) {
	query := fmt.Sprintf("SELECT id FROM %s WHERE id > $1 ORDER BY id LIMIT $2", table)

	rows, err := db.Query(ctx, query, after, size)
	if err != nil {
		return nil, fmt.Errorf("reindex: window query on %s: %w", table, err)
	}
	defer rows.Close()

	var pks []int64
	for rows.Next() {
		var pk int64
		if err := rows.Scan(&pk); err != nil {
			return nil, fmt.Errorf("reindex: window scan on %s: %w", table, err)
		}
		pks = append(pks, pk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reindex: window iteration on %s: %w", table, err)
	}

	return pks, nil
}
